package engine

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/hanpama/shopgraph/internal/store"
)

const defaultProductsLimit = 10

// inlineIDPattern matches a literal numeric id embedded in the query text,
// e.g. `product(id: 3)`. Legacy callers inline literals instead of using
// variables; the fallback must stay.
var inlineIDPattern = regexp.MustCompile(`id:\s*(\d+)`)

// intValue coerces a decoded JSON value to an int. JSON numbers arrive as
// float64; other shapes show up in tests and hand-built variable maps.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// productsArgs extracts the productsList arguments. limit defaults to 10;
// category is empty when absent (no filter).
func productsArgs(vars map[string]any) (limit int, category string) {
	limit = defaultProductsLimit
	if n, ok := intValue(vars["limit"]); ok {
		limit = n
	}
	if c, ok := vars["category"].(string); ok {
		category = c
	}
	return limit, category
}

// productIDArg extracts the singleProduct id: variables first, then the
// inline-literal fallback against the raw query text, then 1.
func productIDArg(vars map[string]any, rawQuery string) int {
	if id, ok := intValue(vars["id"]); ok {
		return id
	}
	if m := inlineIDPattern.FindStringSubmatch(rawQuery); m != nil {
		id, err := strconv.Atoi(m[1])
		if err == nil {
			return id
		}
	}
	return 1
}

// orderItemInput is the transient argument shape of one createOrder item.
type orderItemInput struct {
	ProductID int
	Quantity  int
}

// orderItemsArg extracts createOrder items, defaulting to an empty list.
// Quantity defaults to 1 per item.
func orderItemsArg(vars map[string]any) []orderItemInput {
	raw, ok := vars["items"].([]any)
	if !ok {
		return nil
	}
	items := make([]orderItemInput, 0, len(raw))
	for _, el := range raw {
		m, ok := el.(map[string]any)
		if !ok {
			items = append(items, orderItemInput{Quantity: 1})
			continue
		}
		item := orderItemInput{Quantity: 1}
		if id, ok := intValue(m["productId"]); ok {
			item.ProductID = id
		}
		if q, ok := intValue(m["quantity"]); ok {
			item.Quantity = q
		}
		items = append(items, item)
	}
	return items
}

// updateProductArgs extracts the updateProduct id and partial input. No
// defaults: a missing id stays zero and resolves to not-found.
func updateProductArgs(vars map[string]any) (id int, patch store.ProductPatch) {
	id, _ = intValue(vars["id"])
	input, ok := vars["input"].(map[string]any)
	if !ok {
		return id, patch
	}
	if name, ok := input["name"].(string); ok {
		patch.Name = &name
	}
	if price, ok := input["price"].(float64); ok {
		patch.Price = &price
	} else if n, ok := intValue(input["price"]); ok {
		price := float64(n)
		patch.Price = &price
	}
	if inStock, ok := input["inStock"].(bool); ok {
		patch.InStock = &inStock
	}
	return id, patch
}
