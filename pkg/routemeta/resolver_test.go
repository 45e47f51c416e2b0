package routemeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	t.Run("skip beats everything", func(t *testing.T) {
		name, ok := Required(&Meta{
			Group:      "OrdersController",
			Method:     "ShipAsync",
			Permission: "Orders.Ship",
			Skip:       true,
		})
		assert.False(t, ok)
		assert.Empty(t, name)
	})

	t.Run("anonymous routes require nothing", func(t *testing.T) {
		_, ok := Required(&Meta{Group: "StatusHandler", Method: "Health", Anonymous: true})
		assert.False(t, ok)
	})

	t.Run("explicit override beats convention", func(t *testing.T) {
		name, ok := Required(&Meta{
			Group:      "OrdersController",
			Method:     "ShipAsync",
			Permission: "Orders.Dispatch",
		})
		assert.True(t, ok)
		assert.Equal(t, "Orders.Dispatch", name)
	})

	t.Run("unresolvable route requires nothing", func(t *testing.T) {
		_, ok := Required(nil)
		assert.False(t, ok, "unmapped requests pass unenforced")
	})

	t.Run("convention is the fallback", func(t *testing.T) {
		name, ok := Required(&Meta{Group: "ProductsController", Method: "GetAllAsync"})
		assert.True(t, ok)
		assert.Equal(t, "Products.GetAll", name)
	})

	t.Run("empty module requires nothing", func(t *testing.T) {
		_, ok := Required(&Meta{Group: "Controller", Method: "GetAll"})
		assert.False(t, ok)

		_, ok = Required(&Meta{Method: "Me"})
		assert.False(t, ok)
	})
}
