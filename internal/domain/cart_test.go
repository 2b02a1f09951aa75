package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Cart.Recalculate Tests
// ============================================================================

func TestRecalculate_SingleItem(t *testing.T) {
	c := &Cart{
		Items: []CartItem{
			{ProductID: "p1", Price: 20.00, Quantity: 3},
		},
	}
	c.Recalculate()
	assert.Equal(t, 3, c.TotalItemCount)
	assert.Equal(t, 60.00, c.TotalAmount)
}

func TestRecalculate_MultipleItems(t *testing.T) {
	c := &Cart{
		Items: []CartItem{
			{ProductID: "p1", Price: 59.99, Quantity: 2},
			{ProductID: "p2", Price: 39.99, Quantity: 1},
		},
	}
	c.Recalculate()
	// 119.98 + 39.99 = 159.97
	assert.Equal(t, 3, c.TotalItemCount)
	assert.Equal(t, 159.97, c.TotalAmount)
}

func TestRecalculate_RoundsToTwoDecimals(t *testing.T) {
	c := &Cart{
		Items: []CartItem{
			{ProductID: "p1", Price: 0.1, Quantity: 3},
		},
	}
	c.Recalculate()
	assert.Equal(t, 0.3, c.TotalAmount)
}

func TestRecalculate_EmptyCart(t *testing.T) {
	c := &Cart{Items: []CartItem{}}
	c.TotalItemCount = 99
	c.TotalAmount = 99.99
	c.Recalculate()
	assert.Zero(t, c.TotalItemCount)
	assert.Zero(t, c.TotalAmount)
}

func TestRecalculate_NilItems(t *testing.T) {
	c := &Cart{}
	c.Recalculate()
	assert.Zero(t, c.TotalItemCount)
	assert.Zero(t, c.TotalAmount)
}

// ============================================================================
// Cart.FindItemIndex Tests
// ============================================================================

func TestFindItemIndex_Found(t *testing.T) {
	c := &Cart{
		Items: []CartItem{
			{ProductID: "p1"},
			{ProductID: "p2"},
		},
	}
	assert.Equal(t, 1, c.FindItemIndex("p2"))
}

func TestFindItemIndex_NotFound(t *testing.T) {
	c := &Cart{Items: []CartItem{{ProductID: "p1"}}}
	assert.Equal(t, -1, c.FindItemIndex("p9"))
}

// ============================================================================
// RoundAmount Tests
// ============================================================================

func TestRoundAmount(t *testing.T) {
	assert.Equal(t, 100.00, RoundAmount(99.995))
	assert.Equal(t, 0.3, RoundAmount(0.1*3))
	assert.Equal(t, 159.97, RoundAmount(59.99*2+39.99))
}

func TestUser_WithoutPassword(t *testing.T) {
	u := User{ID: "u1", Email: "a@b.com", Password: "secret"}
	assert.Empty(t, u.WithoutPassword().Password)
	assert.Equal(t, "secret", u.Password, "original must be untouched")
}
