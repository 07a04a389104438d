package engine

import (
	"strings"
	"unicode"
)

// Operation is one of the query/mutation shapes the classifier recognizes.
type Operation string

const (
	OpProductsList  Operation = "productsList"
	OpSingleProduct Operation = "singleProduct"
	OpUser          Operation = "user"
	OpOrdersList    Operation = "ordersList"
	OpCreateOrder   Operation = "createOrder"
	OpUpdateProduct Operation = "updateProduct"
)

// IsMutation reports whether the operation writes to the store.
func (op Operation) IsMutation() bool {
	return op == OpCreateOrder || op == OpUpdateProduct
}

// Classify inspects the whitespace-compacted query text and returns the
// detected operations in precedence order. It deliberately matches on
// substrings instead of parsing a grammar: existing callers depend on this
// exact (sometimes ambiguous) behavior, including detecting several
// operations in one request. A real parser could replace this function
// without touching any resolver.
func Classify(query string) []Operation {
	compact := stripWhitespace(query)
	var ops []Operation

	// product( takes precedence over products{ / products(.
	single := strings.Contains(compact, "product(")
	if single {
		ops = append(ops, OpSingleProduct)
	}
	if !single && (strings.Contains(compact, "products{") || strings.Contains(compact, "products(")) {
		ops = append(ops, OpProductsList)
	}
	if strings.Contains(compact, "user{") || strings.Contains(compact, "me{") {
		ops = append(ops, OpUser)
	}
	if strings.Contains(compact, "orders{") && !strings.Contains(compact, "createOrder(") {
		ops = append(ops, OpOrdersList)
	}
	if strings.Contains(compact, "createOrder(") {
		ops = append(ops, OpCreateOrder)
	}
	if strings.Contains(compact, "updateProduct(") {
		ops = append(ops, OpUpdateProduct)
	}
	return ops
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func operationNames(ops []Operation) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return names
}
