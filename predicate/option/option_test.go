package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSome(t *testing.T) {
	o := Some(42)
	assert.True(t, o.IsSome())
	assert.False(t, o.IsNothing())
	assert.Equal(t, 42, o.Unwrap())
}

func TestNothing(t *testing.T) {
	o := Nothing[int]()
	assert.False(t, o.IsSome())
	assert.True(t, o.IsNothing())
}

func TestUnwrapPanicsOnNothing(t *testing.T) {
	o := Nothing[string]()
	assert.Panics(t, func() { o.Unwrap() })
}

func TestUnwrapOr(t *testing.T) {
	assert.Equal(t, 1, Some(1).UnwrapOr(9))
	assert.Equal(t, 9, Nothing[int]().UnwrapOr(9))
}

func TestSomeNilIsStillSome(t *testing.T) {
	o := Some[any](nil)
	assert.True(t, o.IsSome())
	assert.Nil(t, o.Unwrap())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Some(7)", Some(7).String())
	assert.Equal(t, "Nothing", Nothing[int]().String())
}
