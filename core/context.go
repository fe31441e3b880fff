package core

import "context"

// Context keys for computation options
type contextKey string

const suppressHeaderKey contextKey = "suppressHeader"

// WithSuppressHeader returns a context that suppresses the run header.
// The MCP server uses this so tool output stays pure JSON.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
