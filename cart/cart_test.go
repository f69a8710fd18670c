package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		1: {ID: 1, Name: "Classic Fries", Price: decimal.RequireFromString("4.99"), Available: true},
		2: {ID: 2, Name: "Loaded Fries", Price: decimal.RequireFromString("7.99"), Available: true},
		3: {ID: 3, Name: "Truffle Fries", Price: decimal.RequireFromString("9.99"), Available: false},
	}
}

func TestAddCreatesAndIncrementsLines(t *testing.T) {
	c := New()

	c.Add(1)
	assert.Equal(t, 1, c.Quantity(1))

	c.Add(1)
	assert.Equal(t, 2, c.Quantity(1))

	c.Add(2)
	assert.Equal(t, 1, c.Quantity(2))
	assert.Equal(t, 3, c.UnitCount())
}

func TestRemoveDeletesLineAtZero(t *testing.T) {
	c := New()
	c.Add(1)
	c.Add(1)

	c.Remove(1)
	assert.Equal(t, 1, c.Quantity(1))

	c.Remove(1)
	_, exists := c[1]
	assert.False(t, exists, "line should disappear, not store zero")
	assert.Equal(t, 0, c.Quantity(1))
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	c := New()
	c.Add(2)

	c.Remove(99)
	assert.Equal(t, 1, c.Quantity(2))
	assert.Equal(t, 1, c.UnitCount())
}

func TestSubtotalAndTotal(t *testing.T) {
	catalog := testCatalog()
	fee := decimal.RequireFromString("2.99")

	c := New()
	c.Add(1)
	c.Add(1)
	c.Add(2)

	subtotal, err := catalog.Subtotal(c)
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(decimal.RequireFromString("17.97")), "got %s", subtotal)

	total, err := catalog.Total(c, fee)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("20.96")), "got %s", total)

	c.Remove(1)
	subtotal, err = catalog.Subtotal(c)
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(decimal.RequireFromString("12.98")), "got %s", subtotal)

	total, err = catalog.Total(c, fee)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("15.97")), "got %s", total)

	c.Remove(1)
	_, exists := c[1]
	assert.False(t, exists)
	assert.Equal(t, 1, c.Quantity(2))
}

func TestEmptyCartSubtotalIsZero(t *testing.T) {
	subtotal, err := testCatalog().Subtotal(New())
	require.NoError(t, err)
	assert.True(t, subtotal.IsZero())
}

func TestUnknownItemRejected(t *testing.T) {
	c := New()
	c.Add(42)

	_, err := testCatalog().Subtotal(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestUnavailableItemRejected(t *testing.T) {
	c := New()
	c.Add(3) // Truffle Fries, unavailable

	_, err := testCatalog().Subtotal(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailableItem)
}
