package routemeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Add("b", &Meta{Group: "B", Method: "One"})
	registry.Add("a", &Meta{Group: "A", Method: "Two"})
	registry.Add("c", &Meta{Group: "C", Method: "Three"})

	t.Run("lookup", func(t *testing.T) {
		meta, ok := registry.Lookup("a")
		assert.True(t, ok)
		assert.Equal(t, "A", meta.Group)

		_, ok = registry.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("entries preserve registration order", func(t *testing.T) {
		groups := []string{}
		for _, meta := range registry.Entries() {
			groups = append(groups, meta.Group)
		}
		assert.Equal(t, []string{"B", "A", "C"}, groups)
	})

	t.Run("re-adding replaces in place", func(t *testing.T) {
		registry.Add("a", &Meta{Group: "A2", Method: "Two"})
		assert.Equal(t, 3, registry.Len())

		groups := []string{}
		for _, meta := range registry.Entries() {
			groups = append(groups, meta.Group)
		}
		assert.Equal(t, []string{"B", "A2", "C"}, groups)
	})
}
