package test

import (
	"context"
	"time"

	"github.com/loopcontext/msgformat"
)

// MockContext is a mutable context used by the suites to switch the request
// locale between expectations.
type MockContext struct {
	Ctx context.Context
}

func NewMockContext(locale string) *MockContext {
	ctx := &MockContext{Ctx: context.Background()}
	if locale != "" {
		ctx.SetLocale(locale)
	}
	return ctx
}

func (ctx *MockContext) SetLocale(locale string) {
	ctx.SetValue(msgformat.ContextKey("locale"), locale)
}

func (ctx *MockContext) SetValue(key interface{}, value interface{}) {
	ctx.Ctx = context.WithValue(ctx.Ctx, key, value)
}

func (ctx *MockContext) Deadline() (time.Time, bool) {
	return ctx.Ctx.Deadline()
}

func (ctx *MockContext) Done() <-chan struct{} {
	return ctx.Ctx.Done()
}

func (ctx *MockContext) Err() error {
	return ctx.Ctx.Err()
}

func (ctx *MockContext) Value(key interface{}) interface{} {
	return ctx.Ctx.Value(key)
}
