// Package store holds Workflowr's in-memory collections and writes every
// mutation through to the repository. One Session owns the project, task
// and timer stores for the lifetime of a command.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Option customises store construction.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// cloneAll copies a collection so callers cannot mutate store state.
func cloneAll[T interface{ Clone() T }](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
