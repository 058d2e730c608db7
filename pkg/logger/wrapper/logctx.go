package wrap

import (
	"context"
)

type (
	// LogCtx holds contextual information for logging
	LogCtx struct {
		Action    string
		RequestID string
		Table     string
		RecordID  string
	}

	// logCtxKeyStruct is an unexported type for context keys defined in this package.
	logCtxKeyStruct struct{}
)

// LogCtxKey is the key for log context values
var LogCtxKey = &logCtxKeyStruct{}

// WithLogCtx returns a new context with the provided LogCtx.
// Empty fields of newLc are filled from the LogCtx already stored in ctx.
func WithLogCtx(ctx context.Context, newLc LogCtx) context.Context {
	if lc, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		if newLc.Action == "" {
			newLc.Action = lc.Action
		}
		if newLc.RequestID == "" {
			newLc.RequestID = lc.RequestID
		}
		if newLc.Table == "" {
			newLc.Table = lc.Table
		}
		if newLc.RecordID == "" {
			newLc.RecordID = lc.RecordID
		}
	}
	return context.WithValue(ctx, LogCtxKey, newLc)
}

// FromContext returns the LogCtx stored in ctx, if any.
func FromContext(ctx context.Context) (LogCtx, bool) {
	lc, ok := ctx.Value(LogCtxKey).(LogCtx)
	return lc, ok
}

// WithRequestID adds or updates the RequestID in the LogCtx within the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	lc, _ := FromContext(ctx)
	lc.RequestID = requestID
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	lc, _ := FromContext(ctx)
	lc.Action = action
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithRecord sets the table and record id the current operation works on.
func WithRecord(ctx context.Context, table, recordID string) context.Context {
	lc, _ := FromContext(ctx)
	lc.Table = table
	lc.RecordID = recordID
	return context.WithValue(ctx, LogCtxKey, lc)
}
