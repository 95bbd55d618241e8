package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the cascade stream
const (
	EventPostDeleted    = "post_deleted"
	EventCommentDeleted = "comment_deleted"
	EventUserDeleted    = "user_deleted"
)

// Stream names
const (
	StreamCascade = "stream:cascade"
)

// Consumer group name for cascade workers
const (
	ConsumerGroupCascade = "cascade_workers"
)

// CascadeEvent represents an event published to the cascade stream.
// The primary document is deleted synchronously before publishing; the
// worker removes the dependents. All ids are hex object ids.
type CascadeEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	// Post event (PostDeleted)
	PostID string `json:"post_id,omitempty"`

	// Comment event (CommentDeleted)
	CommentID string `json:"comment_id,omitempty"`

	// User event (UserDeleted)
	UserID string `json:"user_id,omitempty"`
}

// NewPostDeletedEvent creates an event for when a post is deleted.
// Worker will remove the post's comments and replies.
func NewPostDeletedEvent(postID string) CascadeEvent {
	return CascadeEvent{
		Type:      EventPostDeleted,
		Timestamp: time.Now().Unix(),
		PostID:    postID,
	}
}

// NewCommentDeletedEvent creates an event for when a comment is deleted.
// Worker will remove the comment's replies.
func NewCommentDeletedEvent(commentID string) CascadeEvent {
	return CascadeEvent{
		Type:      EventCommentDeleted,
		Timestamp: time.Now().Unix(),
		CommentID: commentID,
	}
}

// NewUserDeletedEvent creates an event for when an account is deleted.
// Worker will remove the user's posts, comments and replies, each with
// their own dependents, and strip the id from other users' lists.
func NewUserDeletedEvent(userID string) CascadeEvent {
	return CascadeEvent{
		Type:      EventUserDeleted,
		Timestamp: time.Now().Unix(),
		UserID:    userID,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e CascadeEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseCascadeEvent parses a CascadeEvent from Redis stream message values.
func ParseCascadeEvent(values map[string]interface{}) (CascadeEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return CascadeEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event CascadeEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return CascadeEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
