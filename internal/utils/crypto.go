// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateDownloadLink mints a placeholder link for a digital product
// registered without one. The link is fixed at registration and copied into
// line item snapshots at sale time, never regenerated.
func GenerateDownloadLink() (string, error) {
	token, err := GenerateRandomString(32)
	if err != nil {
		return "", err
	}
	return "https://downloads.mercado.local/" + token, nil
}
