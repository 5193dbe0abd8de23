package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoDo(t *testing.T) {
	m := New()
	calls := 0
	upper := func(s string) string {
		calls++
		return s + "!"
	}

	assert.Equal(t, "a!", m.Do("a", upper))
	assert.Equal(t, "a!", m.Do("a", upper))
	assert.Equal(t, "b!", m.Do("b", upper))
	assert.Equal(t, 2, calls)

	m.Set("c", "x")
	v, ok := m.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}
