package engine

// GraphQLError is a structured, non-fatal failure record attached to a
// response. It is accumulated, never thrown.
type GraphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// ExecutionResult is the { data, errors } envelope returned to the caller.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
