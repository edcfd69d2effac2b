package service

import (
	"context"
	"testing"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type MockOrderFeed struct {
	mock.Mock
}

func NewMockOrderFeed(t *testing.T) *MockOrderFeed {
	m := &MockOrderFeed{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderFeed) Publish(event *service.OrderEvent) {
	m.Called(event)
}

func (m *MockOrderFeed) Subscribe() (<-chan *service.OrderEvent, func()) {
	args := m.Called()

	return value[<-chan *service.OrderEvent](args, 0), value[func()](args, 1)
}

type MockMailer struct {
	mock.Mock
}

func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	register(t, &m.Mock)

	return m
}

func (m *MockMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type MockPushNotifier struct {
	mock.Mock
}

func NewMockPushNotifier(t *testing.T) *MockPushNotifier {
	m := &MockPushNotifier{}
	register(t, &m.Mock)

	return m
}

func (m *MockPushNotifier) Push(ctx context.Context, tokens []string, msg *service.PushMessage) (*service.PushReport, error) {
	args := m.Called(ctx, tokens, msg)

	return value[*service.PushReport](args, 0), args.Error(1)
}
