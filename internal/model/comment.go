package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment represents a comment on a post. Replies holds the ids of the
// replies beneath it and must equal the set of Reply documents whose
// commentId points here.
type Comment struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content   string          `bson:"content" json:"content"`
	PostID    bson.ObjectID   `bson:"postId" json:"post_id"`
	UserID    bson.ObjectID   `bson:"userId" json:"user_id"`
	Replies   []bson.ObjectID `bson:"replies" json:"replies"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}

// CreateCommentRequest is the request body for commenting on a post.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateCommentRequest patches the comment content.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrContentRequired = errors.New("content is required")
)
