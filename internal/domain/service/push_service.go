package service

import (
	"context"
)

// PushService delivers device push messages.
type PushService interface {
	// SendToTopic sends one message to every device subscribed to the topic.
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (messageID string, err error)
}

// UserTopic is the push topic every device of a user subscribes to.
func UserTopic(userID string) string {
	return "user_" + userID
}
