package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Equal(t, []Component{Named("name")}, Parse("name"))
	assert.Equal(t,
		[]Component{Named("city"), Named("name"), Named("iexact")},
		Parse("city__name__iexact"),
	)
}

func TestJoinInvertsParse(t *testing.T) {
	for _, path := range []string{"", "name", "city__name__iexact"} {
		assert.Equal(t, path, Join(Parse(path)))
	}
}

func TestJoinSkipsRoot(t *testing.T) {
	assert.Equal(t, "a__b", Join([]Component{Named("a"), Root, Named("b")}))
}

func TestIsOperator(t *testing.T) {
	assert.True(t, Named("iexact").IsOperator())
	assert.True(t, Named("week_day").IsOperator())
	assert.False(t, Named("name").IsOperator())
	assert.False(t, Root.IsOperator())
}

func TestRootIsZeroValue(t *testing.T) {
	var c Component
	assert.True(t, c.IsRoot())
	assert.Equal(t, Root, c)
	assert.NotEqual(t, Root, Named(""))
}
