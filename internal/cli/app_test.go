// internal/cli/app_test.go
package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfranca/mercado/internal/config"
	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/services"
	"github.com/gfranca/mercado/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "error",
		Auth: config.AuthConfig{
			MaxLoginAttempts: 3,
			ThrottleSeconds:  0,
			ThrottleBurst:    3,
		},
		Shipping: config.ShippingConfig{VolumeFactor: 0.5},
	}
}

func newTestServices(t *testing.T) (*services.UserService, *services.CatalogStore, *services.OrderBook) {
	db, err := storage.NewDB(t.TempDir())
	require.NoError(t, err)
	users, err := services.NewUserService(db)
	require.NoError(t, err)
	catalog, err := services.NewCatalogStore(db)
	require.NoError(t, err)
	orders, err := services.NewOrderBook(db, catalog)
	require.NoError(t, err)
	return users, catalog, orders
}

// First run on an empty data directory: admin bootstrap, login, product
// registration, stock view, exit.
func TestFirstRunAdminSession(t *testing.T) {
	users, catalog, orders := newTestServices(t)

	script := strings.Join([]string{
		// first-run admin creation
		"Root Admin",
		"Rua das Flores, 10",
		"11 99999-0000",
		"root@example.com",
		"Forte123",
		// login
		"root@example.com",
		"Forte123",
		// register a physical product
		"2",
		"fisico",
		"Caixa de som",
		"2",
		"10",
		"1",
		"2",
		"1",
		// view stock, then leave
		"1",
		"6",
	}, "\n") + "\n"

	var out bytes.Buffer
	app := NewApp(testConfig(), users, catalog, orders, strings.NewReader(script), &out)
	require.NoError(t, app.Run())

	assert.True(t, users.HasAdmin())
	products := catalog.List()
	require.Len(t, products, 1)
	assert.Equal(t, "Caixa de som", products[0].Base().Name)
	assert.Equal(t, 10, products[0].(*models.PhysicalProduct).Stock)

	assert.Contains(t, out.String(), "cadastrado com sucesso com o ID 1")
	assert.Contains(t, out.String(), "Caixa de som")
}

// Three wrong passwords abort the session.
func TestLoginAbortsAfterMaxAttempts(t *testing.T) {
	users, catalog, orders := newTestServices(t)
	_, err := users.Register(&services.RegisterUserRequest{
		Name: "Ana", Address: "Rua X", Phone: "11 1234",
		Email: "ana@example.com", Password: "Forte123", Type: models.UserTypeAdmin,
	})
	require.NoError(t, err)

	script := strings.Repeat("ana@example.com\nerrada\n", 3)

	var out bytes.Buffer
	app := NewApp(testConfig(), users, catalog, orders, strings.NewReader(script), &out)
	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "Número máximo de tentativas excedido")
}

// A client places an order end to end through the menus.
func TestClientOrderSession(t *testing.T) {
	users, catalog, orders := newTestServices(t)
	_, err := users.Register(&services.RegisterUserRequest{
		Name: "Root", Address: "Rua X", Phone: "11 1234",
		Email: "root@example.com", Password: "Forte123", Type: models.UserTypeAdmin,
	})
	require.NoError(t, err)
	client, err := users.Register(&services.RegisterUserRequest{
		Name: "Ana", Address: "Rua Y", Phone: "11 5678",
		Email: "ana@example.com", Password: "segredo123", Type: models.UserTypeClient,
	})
	require.NoError(t, err)
	productID, err := catalog.Register(&services.RegisterProductRequest{
		Kind: models.ProductKindPhysical, Name: "Caixa de som",
		Price: 2, Stock: 10, Height: 1, Width: 2, Depth: 1,
	})
	require.NoError(t, err)

	script := strings.Join([]string{
		"ana@example.com",
		"segredo123",
		// new order: add 4 units, finish
		"2",
		"1",
		"1",
		"4",
		"3",
		// my orders, then leave
		"1",
		"3",
	}, "\n") + "\n"

	var out bytes.Buffer
	app := NewApp(testConfig(), users, catalog, orders, strings.NewReader(script), &out)
	require.NoError(t, app.Run())

	product, err := catalog.Get(productID)
	require.NoError(t, err)
	assert.Equal(t, 6, product.(*models.PhysicalProduct).Stock)

	pending := orders.ListPending(nil)
	require.Len(t, pending, 1)
	assert.Equal(t, client.ID, pending[0].ClientID)
	assert.Equal(t, "9.00", pending[0].Total().StringFixed(2))
	assert.Contains(t, out.String(), "finalizado! Total: R$ 9.00")
}
