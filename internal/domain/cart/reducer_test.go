package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64) Product {
	return Product{ProductID: id, Name: "Product " + id, Price: price, InStock: true}
}

func TestReduceAddItem(t *testing.T) {
	t.Run("same product twice merges quantities", func(t *testing.T) {
		state := NewState(nil)

		state, _ = Reduce(state, AddItem{Product: product("A", 10), Quantity: 2})
		state, _ = Reduce(state, AddItem{Product: product("A", 10), Quantity: 3})

		require.Len(t, state.Items, 1)
		assert.Equal(t, 5, state.Items[0].Quantity)
		assert.Equal(t, 5, state.TotalItems)
		assert.Equal(t, 50.0, state.TotalAmount)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		state, note := Reduce(NewState(nil), AddItem{Product: product("A", 10)})

		require.Len(t, state.Items, 1)
		assert.Equal(t, 1, state.Items[0].Quantity)
		require.NotNil(t, note)
		assert.Equal(t, NotificationSuccess, note.Kind)
		assert.Equal(t, "Product A added to cart", note.Message)
	})

	t.Run("new products are appended in order", func(t *testing.T) {
		state := NewState(nil)
		for _, id := range []string{"C", "A", "B"} {
			state, _ = Reduce(state, AddItem{Product: product(id, 1), Quantity: 1})
		}

		ids := make([]string, 0, len(state.Items))
		for _, item := range state.Items {
			ids = append(ids, item.ProductID)
		}
		assert.Equal(t, []string{"C", "A", "B"}, ids)
	})

	t.Run("product without ID is ignored", func(t *testing.T) {
		before := NewState(nil)
		after, note := Reduce(before, AddItem{Product: Product{Name: "ghost"}, Quantity: 1})

		assert.Equal(t, before, after)
		assert.Nil(t, note)
	})

	t.Run("input state is not modified", func(t *testing.T) {
		before, _ := Reduce(NewState(nil), AddItem{Product: product("A", 10), Quantity: 1})
		_, _ = Reduce(before, AddItem{Product: product("A", 10), Quantity: 4})

		assert.Equal(t, 1, before.Items[0].Quantity)
	})
}

func TestReduceRemoveItem(t *testing.T) {
	state, _ := Reduce(NewState(nil), AddItem{Product: product("A", 10), Quantity: 2})
	state, _ = Reduce(state, AddItem{Product: product("B", 5), Quantity: 1})

	t.Run("removes the matching line", func(t *testing.T) {
		after, note := Reduce(state, RemoveItem{ProductID: "A"})

		require.Len(t, after.Items, 1)
		assert.Equal(t, "B", after.Items[0].ProductID)
		assert.Equal(t, 1, after.TotalItems)
		assert.Equal(t, 5.0, after.TotalAmount)
		require.NotNil(t, note)
		assert.Equal(t, "Item removed from cart", note.Message)
	})

	t.Run("missing product is a no-op", func(t *testing.T) {
		after, _ := Reduce(state, RemoveItem{ProductID: "nope"})

		assert.Equal(t, state, after)
	})
}

func TestReduceUpdateQuantity(t *testing.T) {
	state, _ := Reduce(NewState(nil), AddItem{Product: product("A", 10), Quantity: 2})
	state, _ = Reduce(state, AddItem{Product: product("B", 5), Quantity: 1})

	t.Run("sets the quantity", func(t *testing.T) {
		after, note := Reduce(state, UpdateQuantity{ProductID: "A", Quantity: 7})

		item, ok := after.Find("A")
		require.True(t, ok)
		assert.Equal(t, 7, item.Quantity)
		assert.Equal(t, 8, after.TotalItems)
		assert.Equal(t, 75.0, after.TotalAmount)
		require.NotNil(t, note)
		assert.Equal(t, "Cart updated", note.Message)
	})

	for _, qty := range []int{0, -3} {
		after, _ := Reduce(state, UpdateQuantity{ProductID: "A", Quantity: qty})

		_, ok := after.Find("A")
		assert.False(t, ok, "quantity %d should remove the line", qty)
		assert.Equal(t, 1, after.TotalItems)
	}

	t.Run("missing product is left alone", func(t *testing.T) {
		after, _ := Reduce(state, UpdateQuantity{ProductID: "Z", Quantity: 3})

		assert.Equal(t, state.Items, after.Items)
	})
}

func TestReduceClearCart(t *testing.T) {
	state := NewState(nil)
	state, _ = Reduce(state, AddItem{Product: Product{ProductID: "A", Price: 10, PV: 2}, Quantity: 4})

	after, note := Reduce(state, ClearCart{})

	assert.Empty(t, after.Items)
	assert.Zero(t, after.TotalItems)
	assert.Zero(t, after.TotalAmount)
	assert.Zero(t, after.TotalPV)
	require.NotNil(t, note)
	assert.Equal(t, "Cart cleared", note.Message)
}

func TestReduceLoadCart(t *testing.T) {
	t.Run("persisted snapshot", func(t *testing.T) {
		state, note := Reduce(NewState(nil), LoadCart{Items: []LineItem{
			{ProductID: "A", Quantity: 2, Price: 100},
		}})

		assert.Nil(t, note)
		assert.Equal(t, 200.0, state.TotalAmount)
		assert.Equal(t, 2, state.TotalItems)
	})

	t.Run("replaces existing items", func(t *testing.T) {
		state, _ := Reduce(NewState(nil), AddItem{Product: product("X", 1), Quantity: 9})
		state, _ = Reduce(state, LoadCart{Items: []LineItem{{ProductID: "A", Quantity: 1, Price: 3}}})

		require.Len(t, state.Items, 1)
		assert.Equal(t, "A", state.Items[0].ProductID)
	})

	t.Run("invalid lines dropped and duplicates merged", func(t *testing.T) {
		state, _ := Reduce(NewState(nil), LoadCart{Items: []LineItem{
			{ProductID: "A", Quantity: 1, Price: 10},
			{ProductID: "", Quantity: 4, Price: 10},
			{ProductID: "B", Quantity: 0, Price: 10},
			{ProductID: "A", Quantity: 2, Price: 10},
		}})

		require.Len(t, state.Items, 1)
		assert.Equal(t, 3, state.Items[0].Quantity)
		assert.Equal(t, 30.0, state.TotalAmount)
	})
}

func TestReducePointerAndNilActions(t *testing.T) {
	state, _ := Reduce(NewState(nil), &AddItem{Product: product("A", 10), Quantity: 2})
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)

	state, note := Reduce(state, &UpdateQuantity{ProductID: "A", Quantity: 5})
	require.NotNil(t, note)
	assert.Equal(t, 5, state.TotalItems)

	t.Run("empty pointer action is a no-op add", func(t *testing.T) {
		var after State
		assert.NotPanics(t, func() { after, note = Reduce(state, &AddItem{}) })
		assert.Equal(t, state, after)
		assert.Nil(t, note)
	})

	t.Run("nil actions leave state alone", func(t *testing.T) {
		var missing *ClearCart
		for _, action := range []Action{nil, missing, (*LoadCart)(nil)} {
			var after State
			assert.NotPanics(t, func() { after, note = Reduce(state, action) })
			assert.Equal(t, state, after)
			assert.Nil(t, note)
		}
	})

	after, _ := Reduce(state, &ClearCart{})
	assert.True(t, after.IsEmpty())
}

func TestTotals(t *testing.T) {
	state := NewState([]LineItem{
		{ProductID: "A", Price: 100, DiscountPrice: 80, PV: 5, Quantity: 2},
		{ProductID: "B", Price: 50, Quantity: 3},
		{ProductID: "C", Price: 20, DiscountPrice: 0, PV: 1.5, Quantity: 2},
	})

	assert.Equal(t, 7, state.TotalItems)
	assert.Equal(t, 80.0*2+50*3+20*2, state.TotalAmount)
	assert.Equal(t, 5.0*2+1.5*2, state.TotalPV)
}

func TestReduceScenario(t *testing.T) {
	p1 := Product{ProductID: "P1", Name: "P1", Price: 500, PV: 10, InStock: true}

	state := NewState(nil)
	state, _ = Reduce(state, AddItem{Product: p1, Quantity: 1})
	state, _ = Reduce(state, AddItem{Product: p1, Quantity: 1})

	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 1000.0, state.TotalAmount)
	assert.Equal(t, 20.0, state.TotalPV)

	state, _ = Reduce(state, UpdateQuantity{ProductID: "P1", Quantity: 0})

	assert.Empty(t, state.Items)
	assert.Zero(t, state.TotalItems)
	assert.Zero(t, state.TotalAmount)
	assert.Zero(t, state.TotalPV)
}
