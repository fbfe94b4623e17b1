package logging

import "context"

type requestIDKey struct{}

// RequestIDKey is the attribute name under which both backends log the id
// stored by WithRequestID.
const RequestIDKey = "request_id"

// WithRequestID returns a copy of ctx carrying id. Loggers append it to
// every entry logged with that context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// withContextArgs appends the context-derived attributes to args.
func withContextArgs(ctx context.Context, args []any) []any {
	if id, ok := RequestID(ctx); ok {
		return append(args[:len(args):len(args)], RequestIDKey, id)
	}
	return args
}
