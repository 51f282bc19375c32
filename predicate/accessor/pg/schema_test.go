package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasManyDefaults(t *testing.T) {
	s := NewSchema().RegisterHasMany("users", "orders")

	r, ok := s.relation("users", "orders")
	require.True(t, ok)
	assert.Equal(t, hasMany, r.kind)
	assert.Equal(t, "orders", r.table)
	assert.Equal(t, "user_id", r.foreignKey)
}

func TestHasManySingularFieldPluralizesTable(t *testing.T) {
	s := NewSchema().RegisterHasMany("companies", "employee")

	r, ok := s.relation("companies", "employee")
	require.True(t, ok)
	assert.Equal(t, "employees", r.table)
	assert.Equal(t, "company_id", r.foreignKey)
}

func TestBelongsToDefaults(t *testing.T) {
	s := NewSchema().RegisterBelongsTo("orders", "user")

	r, ok := s.relation("orders", "user")
	require.True(t, ok)
	assert.Equal(t, belongsTo, r.kind)
	assert.Equal(t, "users", r.table)
	assert.Equal(t, "user_id", r.foreignKey)
}

func TestRelationOverrides(t *testing.T) {
	s := NewSchema().
		RegisterHasMany("users", "posts", WithTable("articles"), WithForeignKey("author_id")).
		RegisterBelongsTo("articles", "author", WithTable("users"))

	r, ok := s.relation("users", "posts")
	require.True(t, ok)
	assert.Equal(t, "articles", r.table)
	assert.Equal(t, "author_id", r.foreignKey)

	r, ok = s.relation("articles", "author")
	require.True(t, ok)
	assert.Equal(t, "users", r.table)
	assert.Equal(t, "author_id", r.foreignKey)
}

func TestUnknownRelation(t *testing.T) {
	s := NewSchema().RegisterHasMany("users", "orders")

	_, ok := s.relation("users", "name")
	assert.False(t, ok)
	_, ok = s.relation("orders", "orders")
	assert.False(t, ok)
}
