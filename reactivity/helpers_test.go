package reactivity_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/delaneyj/signalgraph/reactivity"
)

func newSystem(t *testing.T, opts ...reactivity.Option) *reactivity.System {
	t.Helper()
	opts = append([]reactivity.Option{
		reactivity.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return reactivity.New(opts...)
}

func newLoggedSystem(t *testing.T) (*reactivity.System, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	rs := reactivity.New(reactivity.WithLogger(slog.New(slog.NewTextHandler(buf, nil))))
	return rs, buf
}

func depsOf(sub reactivity.Subscriber) []*reactivity.Dep {
	var deps []*reactivity.Dep
	for link := sub.FirstDep(); link != nil; link = link.NextDep() {
		deps = append(deps, link.Dep())
	}
	return deps
}
