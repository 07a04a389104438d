// Package logging attaches a zap logger to the event bus so request and
// order activity gets logged without coupling the server or engine to a
// logging library.
package logging

import (
	"context"

	"go.uber.org/zap"

	eventbus "github.com/hanpama/shopgraph/internal/eventbus"
	events "github.com/hanpama/shopgraph/internal/events"
	reqid "github.com/hanpama/shopgraph/internal/reqid"
)

// New builds a production zap logger.
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}

// Attach subscribes log with the global event bus and returns an
// unsubscribe function.
func Attach(log *zap.Logger) (detach func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			rid, _ := reqid.FromContext(ctx)
			log.Info("http request",
				zap.Int64("reqid", rid),
				zap.String("method", e.Request.Method),
				zap.String("path", e.Request.URL.Path),
				zap.Int("status", e.Status),
				zap.Duration("duration", e.Duration),
			)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
			rid, _ := reqid.FromContext(ctx)
			log.Info("graphql request",
				zap.Int64("reqid", rid),
				zap.Strings("operations", e.Operations),
				zap.Int("errors", len(e.Errors)),
				zap.Duration("duration", e.Duration),
			)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.OrderCreated) {
			rid, _ := reqid.FromContext(ctx)
			log.Info("order created",
				zap.Int64("reqid", rid),
				zap.Int("order_id", e.OrderID),
				zap.Int("user_id", e.UserID),
				zap.Float64("total", e.Total),
				zap.Int("items", e.Items),
			)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
