package wrap

import (
	"context"
	"errors"
)

// loggedError remembers the LogCtx of the place an error was produced, so the
// caller that finally logs it reports the action and record it failed on.
type loggedError struct {
	err    error
	logCtx LogCtx
}

func (e *loggedError) Error() string {
	return e.err.Error()
}

func (e *loggedError) Unwrap() error {
	return e.err
}

// Error attaches the LogCtx of ctx to err. Nil stays nil.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	lc, _ := FromContext(ctx)
	return &loggedError{err: err, logCtx: lc}
}

// ErrorCtx returns ctx carrying the LogCtx attached to err by Error, merged over
// the one ctx already has. The outermost attachment wins.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *loggedError
	if !errors.As(err, &e) {
		return ctx
	}
	return WithLogCtx(ctx, e.logCtx)
}
