//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/shopnotify/migrations"
	"github.com/dmitrymomot/shopnotify/pkg/logger"
	"github.com/dmitrymomot/shopnotify/pkg/pg"
	"github.com/dmitrymomot/shopnotify/svc/notify"
	"github.com/dmitrymomot/shopnotify/svc/notify/postgres"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := pg.Config{
		ConnectionString: connStr,
		MaxOpenConns:     5,
		MaxIdleConns:     1,
		RetryAttempts:    3,
		MigrationsTable:  "notifier_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, migrations.FS, cfg, logger.Discard()))
	return pool
}

type fixture struct {
	buyer, admin1, admin2, supplier1, supplier2 int64
	orderID                                      int64
}

func seed(t *testing.T, pool *pgxpool.Pool) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture

	insertUser := func(email string, typ notify.UserType) int64 {
		var id int64
		err := pool.QueryRow(ctx, `INSERT INTO users (email, type) VALUES ($1, $2) RETURNING id`, email, string(typ)).Scan(&id)
		require.NoError(t, err)
		return id
	}
	insertShop := func(userID int64) int64 {
		var id int64
		err := pool.QueryRow(ctx, `INSERT INTO shops (name, user_id) VALUES ('shop', $1) RETURNING id`, userID).Scan(&id)
		require.NoError(t, err)
		return id
	}
	insertProduct := func(shopID, externalID int64, model, price string) int64 {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO product_infos (shop_id, external_id, model, price) VALUES ($1, $2, $3, $4::numeric) RETURNING id`,
			shopID, externalID, model, price).Scan(&id)
		require.NoError(t, err)
		return id
	}

	f.buyer = insertUser("buyer@example.com", notify.UserTypeBuyer)
	f.admin2 = insertUser("admin2@example.com", notify.UserTypeAdmin)
	f.admin1 = insertUser("admin1@example.com", notify.UserTypeAdmin)
	f.supplier1 = insertUser("s1@example.com", notify.UserTypeSupplier)
	f.supplier2 = insertUser("s2@example.com", notify.UserTypeSupplier)

	shop1 := insertShop(f.supplier1)
	shop2 := insertShop(f.supplier2)
	p1 := insertProduct(shop1, 1001, "Phone", "499.99")
	p2 := insertProduct(shop2, 1002, "Case", "9.90")
	p3 := insertProduct(shop1, 1003, "Charger", "19.00")

	err := pool.QueryRow(ctx, `INSERT INTO orders (user_id, state) VALUES ($1, 'assembled') RETURNING id`, f.buyer).Scan(&f.orderID)
	require.NoError(t, err)
	for _, it := range []struct {
		product int64
		qty     int
	}{{p1, 1}, {p2, 2}, {p3, 1}} {
		_, err := pool.Exec(ctx, `INSERT INTO order_items (order_id, product_info_id, quantity) VALUES ($1, $2, $3)`, f.orderID, it.product, it.qty)
		require.NoError(t, err)
	}

	return f
}

func TestRepository(t *testing.T) {
	pool := setupTestDB(t)
	f := seed(t, pool)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	t.Run("GetUser", func(t *testing.T) {
		u, err := repo.GetUser(ctx, f.buyer)
		require.NoError(t, err)
		assert.Equal(t, "buyer@example.com", u.Email)
		assert.Equal(t, notify.UserTypeBuyer, u.Type)

		_, err = repo.GetUser(ctx, 999999)
		assert.ErrorIs(t, err, notify.ErrNotFound)
	})

	t.Run("ListUsersByType orders by id", func(t *testing.T) {
		admins, err := repo.ListUsersByType(ctx, notify.UserTypeAdmin)
		require.NoError(t, err)
		require.Len(t, admins, 2)
		assert.Equal(t, f.admin2, admins[0].ID)
		assert.Equal(t, f.admin1, admins[1].ID)
	})

	t.Run("ListOrderItems", func(t *testing.T) {
		items, err := repo.ListOrderItems(ctx, f.orderID)
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "Phone", items[0].Line.Model)
		assert.Equal(t, int64(1001), items[0].Line.ExternalID)
		assert.True(t, decimal.RequireFromString("499.99").Equal(items[0].Line.Price))
		assert.Equal(t, "s1@example.com", items[0].ShopEmail)

		assert.Equal(t, "Case", items[1].Line.Model)
		assert.Equal(t, 2, items[1].Line.Quantity)
		assert.Equal(t, "s2@example.com", items[1].ShopEmail)

		assert.Equal(t, "s1@example.com", items[2].ShopEmail)

		empty, err := repo.ListOrderItems(ctx, 999999)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("GetOrCreateConfirmToken is idempotent", func(t *testing.T) {
		first, err := repo.GetOrCreateConfirmToken(ctx, f.buyer)
		require.NoError(t, err)
		assert.Len(t, first.Key, 64)
		assert.False(t, first.CreatedAt.IsZero())

		second, err := repo.GetOrCreateConfirmToken(ctx, f.buyer)
		require.NoError(t, err)
		assert.Equal(t, first.Key, second.Key)
	})

	t.Run("GetOrCreateConfirmToken concurrent callers converge", func(t *testing.T) {
		keys := make([]string, 10)
		var wg sync.WaitGroup
		for i := range keys {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tok, err := repo.GetOrCreateConfirmToken(ctx, f.supplier2)
				assert.NoError(t, err)
				keys[i] = tok.Key
			}(i)
		}
		wg.Wait()
		for _, k := range keys {
			assert.Equal(t, keys[0], k)
		}

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM confirm_email_tokens WHERE user_id = $1`, f.supplier2).Scan(&n))
		assert.Equal(t, 1, n)
	})

	t.Run("GetOrCreateConfirmToken unknown user", func(t *testing.T) {
		_, err := repo.GetOrCreateConfirmToken(ctx, 999999)
		assert.ErrorIs(t, err, notify.ErrNotFound)
	})
}
