// Package engine implements a deliberately minimal, pattern-matching query
// interpreter for a GraphQL-style endpoint: it classifies a free-form query
// string into known operations, authorizes and resolves each one against an
// in-memory store, and assembles a { data, errors } envelope with isolated
// per-field errors.
//
// # What this is not
//
// There is no lexer, parser, schema or selection-set handling. Classify tests
// the whitespace-compacted query text for operation-specific substrings in a
// fixed precedence order, and several operations may be detected in a single
// request — each contributes its own key to data. Callers depend on this
// matching behavior, ambiguities included, so it must not be "fixed" by
// swapping in a real grammar without a compatibility plan. The classifier is
// isolated in a single function to keep that swap possible.
//
// # Partial success
//
// Resolvers never abort the request. Every failure — authentication,
// authorization, validation, not-found — is appended to a shared error list
// as a GraphQLError while sibling operations keep running. The caller always
// gets a structured envelope:
//
//   - data is the merged object when at least one resolver wrote a key,
//   - data is null when only errors were recorded,
//   - data is {} when nothing was detected and nothing failed.
//
// # State
//
// The Engine itself is stateless per request; all mutable collections live in
// the injected store.Store, which serializes order creation so order ids are
// never reused even under concurrent requests.
package engine
