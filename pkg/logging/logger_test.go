package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultReturnsSameInstance(t *testing.T) {
	a := Default()
	b := Default()
	require.Same(t, a, b)
}

func TestWithScopesComponent(t *testing.T) {
	l := New(0).With("cache")
	require.Equal(t, "cache", l.component)
}

func TestContextVariantsDoNotPanic(t *testing.T) {
	l := New(0).With("container")
	ctx := context.Background()
	require.NotPanics(t, func() {
		l.DebugCtx(ctx, "constructing", "type", "Foo")
		l.InfoCtx(ctx, "constructed", "type", "Foo")
		l.WarnCtx(ctx, "retrying", "type", "Foo")
		l.ErrorCtx(ctx, "failed", "type", "Foo", "error", "boom")
	})
}
