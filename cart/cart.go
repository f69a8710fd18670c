// Package cart holds the ephemeral ordering basket and its pricing
// rules. A cart lives for one booking session and is never persisted;
// order placement prices it against the vendor's current menu and
// snapshots the result.
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownItem     = errors.New("item is not on this vendor's menu")
	ErrUnavailableItem = errors.New("item is currently unavailable")
)

// Item is one priced catalog entry.
type Item struct {
	ID        uint
	Name      string
	Price     decimal.Decimal
	Available bool
}

// Catalog maps menu-item id to its entry.
type Catalog map[uint]Item

// Cart maps menu-item id to a positive quantity. A line at quantity
// zero never exists; Remove deletes it instead.
type Cart map[uint]int

func New() Cart {
	return Cart{}
}

// Add puts one more unit of the item in the cart, creating the line
// if absent.
func (c Cart) Add(itemID uint) {
	c[itemID]++
}

// Remove takes one unit out. The line disappears when its last unit is
// removed; removing an absent line is a no-op.
func (c Cart) Remove(itemID uint) {
	qty, ok := c[itemID]
	if !ok {
		return
	}
	if qty <= 1 {
		delete(c, itemID)
		return
	}
	c[itemID] = qty - 1
}

// Quantity returns the line's quantity, zero if absent.
func (c Cart) Quantity(itemID uint) int {
	return c[itemID]
}

// UnitCount is the total number of units across all lines (the cart
// badge number).
func (c Cart) UnitCount() int {
	count := 0
	for _, qty := range c {
		count += qty
	}
	return count
}

// Subtotal is the sum of unit price times quantity over every line.
// A line referencing an item missing from the catalog or marked
// unavailable fails the whole computation; a stale cart must not price
// differently than the menu the customer was shown.
func (cat Catalog) Subtotal(c Cart) (decimal.Decimal, error) {
	subtotal := decimal.NewFromInt(0)
	for itemID, qty := range c {
		item, ok := cat[itemID]
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("item %d: %w", itemID, ErrUnknownItem)
		}
		if !item.Available {
			return decimal.Decimal{}, fmt.Errorf("%s: %w", item.Name, ErrUnavailableItem)
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return subtotal, nil
}

// Total is the subtotal plus the vendor's flat delivery fee.
func (cat Catalog) Total(c Cart, deliveryFee decimal.Decimal) (decimal.Decimal, error) {
	subtotal, err := cat.Subtotal(c)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return subtotal.Add(deliveryFee), nil
}
