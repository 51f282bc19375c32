package pg

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/predicate-go/predicate"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	username := getEnv("DB_USERNAME", "devel")
	password := getEnv("DB_PASSWORD", "devel")
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	basename := getEnv("DB_DATABASE", "devel_predicate")

	connString := "postgres://" + username + ":" + password + "@" + host + ":" + port + "/" + basename

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database unavailable: %v", err)
	}
	return pool
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func setupAccessorIntegrationTest(t *testing.T) (*Accessor, func()) {
	t.Helper()

	pool := newTestPool(t)
	ctx := context.Background()

	stmts := []string{
		`DROP TABLE IF EXISTS orders_test`,
		`DROP TABLE IF EXISTS users_test`,
		`CREATE TABLE users_test (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			age INT NOT NULL
		)`,
		`CREATE TABLE orders_test (
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users_test (id),
			total INT NOT NULL
		)`,
		`INSERT INTO users_test (id, name, age) VALUES (1, 'Alice', 30), (2, 'Bob', 17)`,
		`INSERT INTO orders_test (id, user_id, total) VALUES
			(1, 1, 500),
			(2, 1, 20),
			(3, 2, 5)`,
	}
	for _, stmt := range stmts {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	schema := NewSchema().
		RegisterHasMany("users_test", "orders", WithTable("orders_test")).
		RegisterBelongsTo("orders_test", "user", WithTable("users_test"))

	cleanup := func() {
		_, _ = pool.Exec(ctx, `DROP TABLE IF EXISTS orders_test`)
		_, _ = pool.Exec(ctx, `DROP TABLE IF EXISTS users_test`)
		pool.Close()
	}
	return New(ctx, pool, schema), cleanup
}

func TestResolveColumn(t *testing.T) {
	acc, cleanup := setupAccessorIntegrationTest(t)
	defer cleanup()

	root, err := acc.Root("users_test", 1)
	require.NoError(t, err)

	values, err := acc.Resolve(root, "name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice"}, values)

	values, err = acc.Resolve(root, "salary")
	require.NoError(t, err)
	assert.Equal(t, []any{nil}, values)
}

func TestResolveHasManyRelation(t *testing.T) {
	acc, cleanup := setupAccessorIntegrationTest(t)
	defer cleanup()

	root, err := acc.Root("users_test", 1)
	require.NoError(t, err)

	values, err := acc.Resolve(root, "orders")
	require.NoError(t, err)
	assert.Len(t, values, 2)
	for _, v := range values {
		assert.Equal(t, "orders_test", v.(Row).Table)
	}
}

func TestResolveBelongsToRelation(t *testing.T) {
	acc, cleanup := setupAccessorIntegrationTest(t)
	defer cleanup()

	order, err := acc.Root("orders_test", 3)
	require.NoError(t, err)

	values, err := acc.Resolve(order, "user")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "Bob", values[0].(Row).Data["name"])
}

func TestPredicateOverDatabaseRows(t *testing.T) {
	acc, cleanup := setupAccessorIntegrationTest(t)
	defer cleanup()

	alice, err := acc.Root("users_test", 1)
	require.NoError(t, err)
	bob, err := acc.Root("users_test", 2)
	require.NoError(t, err)

	bigSpender := predicate.MustNew(
		predicate.Where("age__gte", 18),
		predicate.Where("orders__total__gt", 100),
	)

	ok, err := bigSpender.EvalWith(alice, acc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = bigSpender.EvalWith(bob, acc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPredicateBelongsToTraversal(t *testing.T) {
	acc, cleanup := setupAccessorIntegrationTest(t)
	defer cleanup()

	order, err := acc.Root("orders_test", 1)
	require.NoError(t, err)

	byAdult := predicate.MustNew(predicate.Where("user__age__gte", 18))
	ok, err := byAdult.EvalWith(order, acc)
	require.NoError(t, err)
	assert.True(t, ok)
}
