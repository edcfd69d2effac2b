package service

import "context"

// PushMessage is one order notification fanned out to a customer's devices.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushReport summarizes a fan-out. InvalidTokens were rejected as
// unregistered and should be pruned.
type PushReport struct {
	Sent          int
	Failed        int
	InvalidTokens []string
}

// PushNotifier delivers push notifications to device tokens.
type PushNotifier interface {
	Push(ctx context.Context, tokens []string, msg *PushMessage) (*PushReport, error)
}
