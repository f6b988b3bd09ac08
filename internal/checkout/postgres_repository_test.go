package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("orders_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cred := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "test",
		Password:          "test",
		DBName:            "orders_test",
		MigrationsDirPath: "../../migrations",
	}

	repo, err := NewRepository(cred)
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations(cred))

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func testOrder(userID string) *domain.Order {
	return &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Contact: domain.ContactInfo{
			Name:     "Олена",
			Email:    "olena@example.com",
			Phone:    "+380501234567",
			Shipping: domain.ShippingNovaPoshtaBranch,
			City:     "Київ",
		},
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Рушник", Price: 500, Quantity: 2},
			{ProductID: "p2", Name: "Вишиванка", Price: 1500, Quantity: 1},
		},
		Subtotal:      2500,
		Total:         2500,
		Status:        domain.OrderStatusNew,
		PaymentStatus: domain.PaymentStatusPending,
	}
}

func TestCreateOrder_RoundTrip(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := testOrder("user42")

	require.NoError(t, repo.CreateOrder(ctx, order))

	stored, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, stored.ID)
	assert.Equal(t, "user42", stored.UserID)
	assert.Equal(t, "Олена", stored.Contact.Name)
	assert.Equal(t, domain.ShippingNovaPoshtaBranch, stored.Contact.Shipping)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "p1", stored.Items[0].ProductID)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, 2500.0, stored.Subtotal)
	assert.Equal(t, 2500.0, stored.Total)
	assert.Equal(t, domain.OrderStatusNew, stored.Status)
	assert.Equal(t, domain.PaymentStatusPending, stored.PaymentStatus)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestCreateOrder_AnonymousUserStoredAsNull(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	order := testOrder("")

	require.NoError(t, repo.CreateOrder(ctx, order))

	stored, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.UserID)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
