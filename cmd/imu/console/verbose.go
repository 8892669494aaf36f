package console

import "context"

type ctxKey int

const ctxKeyVerbose ctxKey = iota

// SetVerbose stores the cli verbose flag on the context so call sites deep
// in command actions can decide how chatty to be.
func SetVerbose(parent context.Context, value bool) context.Context {
	return context.WithValue(parent, ctxKeyVerbose, value)
}

// IsVerbose reports the flag stored by SetVerbose, false when absent.
func IsVerbose(ctx context.Context) bool {
	val, ok := ctx.Value(ctxKeyVerbose).(bool)
	return ok && val
}
