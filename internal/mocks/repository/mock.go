// Package repository provides testify mocks of the repository interfaces.
package repository

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// value returns argument i as T, or the zero value when the expectation returned nil.
func value[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
