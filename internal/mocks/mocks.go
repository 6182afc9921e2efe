// Package mocks provides testify mocks for the store, token and service
// interfaces. Each NewXxx constructor registers AssertExpectations on cleanup.
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// value returns argument i as T, or T's zero value when it was given as nil.
func value[T any](args mock.Arguments, i int) T {
	var zero T
	v := args.Get(i)
	if v == nil {
		return zero
	}
	if fn, ok := v.(func() T); ok {
		return fn()
	}
	return v.(T)
}
