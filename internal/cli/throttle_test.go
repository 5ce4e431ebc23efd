// internal/cli/throttle_test.go
package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleAllowsBurstThenDelays(t *testing.T) {
	throttle := newLoginThrottle(time.Second, 2)

	assert.Zero(t, throttle.Delay("ana@example.com"))
	assert.Zero(t, throttle.Delay("ana@example.com"))
	assert.Greater(t, throttle.Delay("ana@example.com"), time.Duration(0))

	// a different email has its own budget
	assert.Zero(t, throttle.Delay("outro@example.com"))
}
