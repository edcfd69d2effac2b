// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

func value[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
