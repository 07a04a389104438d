package events

import "time"

// GraphQLStart is emitted before executing a query request.
type GraphQLStart struct {
	Query      string
	Operations []string
}

// GraphQLFinish is emitted after executing a query request.
type GraphQLFinish struct {
	Query      string
	Operations []string
	Errors     []error
	Duration   time.Duration
}
