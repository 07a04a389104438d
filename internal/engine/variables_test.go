package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductsArgs(t *testing.T) {
	limit, category := productsArgs(map[string]any{})
	require.Equal(t, 10, limit)
	require.Empty(t, category)

	limit, category = productsArgs(map[string]any{"limit": float64(3), "category": "electronics"})
	require.Equal(t, 3, limit)
	require.Equal(t, "electronics", category)

	// Non-numeric limit falls back to the default.
	limit, _ = productsArgs(map[string]any{"limit": "many"})
	require.Equal(t, 10, limit)
}

func TestProductIDArg(t *testing.T) {
	require.Equal(t, 7, productIDArg(map[string]any{"id": float64(7)}, "{ product(id: 2) }"))
	require.Equal(t, 2, productIDArg(map[string]any{}, "{ product(id: 2) { name } }"))
	require.Equal(t, 42, productIDArg(map[string]any{}, "{product(id:42){name}}"))
	require.Equal(t, 1, productIDArg(map[string]any{}, "{ product { name } }"))
	require.Equal(t, 1, productIDArg(map[string]any{"id": "seven"}, "{ product }"))
}

func TestIntValue(t *testing.T) {
	for _, v := range []any{float64(5), 5, int64(5), json.Number("5")} {
		got, ok := intValue(v)
		require.True(t, ok, "%T", v)
		require.Equal(t, 5, got)
	}
	_, ok := intValue("5")
	require.False(t, ok)
	_, ok = intValue(nil)
	require.False(t, ok)
}

func TestOrderItemsArg(t *testing.T) {
	require.Nil(t, orderItemsArg(map[string]any{}))
	require.Empty(t, orderItemsArg(map[string]any{"items": []any{}}))

	items := orderItemsArg(map[string]any{"items": []any{
		map[string]any{"productId": float64(2), "quantity": float64(3)},
		map[string]any{"productId": float64(4)},
	}})
	require.Equal(t, []orderItemInput{
		{ProductID: 2, Quantity: 3},
		{ProductID: 4, Quantity: 1},
	}, items)
}

func TestUpdateProductArgs(t *testing.T) {
	id, patch := updateProductArgs(map[string]any{
		"id": float64(3),
		"input": map[string]any{
			"price":   79.99,
			"inStock": true,
		},
	})
	require.Equal(t, 3, id)
	require.Nil(t, patch.Name)
	require.NotNil(t, patch.Price)
	require.Equal(t, 79.99, *patch.Price)
	require.NotNil(t, patch.InStock)
	require.True(t, *patch.InStock)

	// No defaults: missing id stays zero, missing input stays empty.
	id, patch = updateProductArgs(map[string]any{})
	require.Zero(t, id)
	require.Nil(t, patch.Name)
	require.Nil(t, patch.Price)
	require.Nil(t, patch.InStock)

	// Integer-typed price still applies.
	_, patch = updateProductArgs(map[string]any{"id": float64(1), "input": map[string]any{"price": 80}})
	require.NotNil(t, patch.Price)
	require.Equal(t, 80.0, *patch.Price)
}
