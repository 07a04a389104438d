package engine

import (
	"context"
	"errors"
	"time"

	"github.com/hanpama/shopgraph/internal/auth"
	"github.com/hanpama/shopgraph/internal/eventbus"
	"github.com/hanpama/shopgraph/internal/events"
	"github.com/hanpama/shopgraph/internal/store"
)

// Request is the shape consumed by the engine. The HTTP layer produces it.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Engine resolves classified operations against an injected store and auth
// verifier. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	store    *store.Store
	verifier auth.Verifier
}

// New creates an engine over the given store and verifier.
func New(s *store.Store, v auth.Verifier) *Engine {
	return &Engine{store: s, verifier: v}
}

// requestState accumulates resolver outputs for one request: a shared data
// object plus an ordered error list. Resolvers append to these instead of
// aborting, so sibling operations in the same request still succeed.
type requestState struct {
	ctx      context.Context
	store    *store.Store
	verifier auth.Verifier
	token    string
	rawQuery string
	vars     map[string]any
	data     map[string]any
	errors   []GraphQLError
}

// Execute classifies the query, runs each detected operation independently
// and assembles the response envelope. token is the bearer token from the
// transport layer; empty means unauthenticated.
func (e *Engine) Execute(ctx context.Context, req Request, token string) *ExecutionResult {
	ops := Classify(req.Query)
	vars := req.Variables
	if vars == nil {
		vars = map[string]any{}
	}
	state := &requestState{
		ctx:      ctx,
		store:    e.store,
		verifier: e.verifier,
		token:    token,
		rawQuery: req.Query,
		vars:     vars,
		data:     map[string]any{},
	}

	start := time.Now()
	eventbus.Publish(ctx, events.GraphQLStart{Query: req.Query, Operations: operationNames(ops)})

	for _, op := range ops {
		switch op {
		case OpProductsList:
			state.resolveProducts()
		case OpSingleProduct:
			state.resolveProduct()
		case OpUser:
			state.resolveUser()
		case OpOrdersList:
			state.resolveOrders()
		case OpCreateOrder:
			state.resolveCreateOrder()
		case OpUpdateProduct:
			state.resolveUpdateProduct()
		}
	}

	result := state.result()
	errs := make([]error, len(result.Errors))
	for i := range result.Errors {
		errs[i] = result.Errors[i]
	}
	eventbus.Publish(ctx, events.GraphQLFinish{
		Query:      req.Query,
		Operations: operationNames(ops),
		Errors:     errs,
		Duration:   time.Since(start),
	})
	return result
}

// result applies the envelope rules: data is the merged object when any
// resolver wrote a key, null when only errors were recorded, and an empty
// object when nothing was detected at all. Downstream consumers distinguish
// "no operation" from "operation failed" through that last case.
func (s *requestState) result() *ExecutionResult {
	res := &ExecutionResult{}
	switch {
	case len(s.data) > 0:
		res.Data = s.data
	case len(s.errors) > 0:
		res.Data = nil
	default:
		res.Data = map[string]any{}
	}
	if len(s.errors) > 0 {
		res.Errors = s.errors
	}
	return res
}

func (s *requestState) addError(message string) {
	s.errors = append(s.errors, GraphQLError{Message: message})
}

func (s *requestState) addErrorCode(message, code string) {
	s.errors = append(s.errors, GraphQLError{
		Message:    message,
		Extensions: map[string]any{"code": code},
	})
}

// errMissingToken distinguishes an absent token from a rejected one.
var errMissingToken = errors.New("authentication required")

func (s *requestState) authenticate() (*store.User, error) {
	if s.token == "" {
		return nil, errMissingToken
	}
	return s.verifier.Verify(s.ctx, s.token)
}

func authErrorMessage(err error) string {
	if errors.Is(err, errMissingToken) {
		return "Authentication required"
	}
	return "Invalid token"
}
