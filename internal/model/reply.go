package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Reply represents a reply beneath a comment. It carries both its
// parent comment id and the post id so post-level cascades can find it
// without walking comments.
type Reply struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string        `bson:"content" json:"content"`
	PostID    bson.ObjectID `bson:"postId" json:"post_id"`
	CommentID bson.ObjectID `bson:"commentId" json:"comment_id"`
	UserID    bson.ObjectID `bson:"userId" json:"user_id"`
	CreatedAt time.Time     `bson:"createdAt" json:"created_at"`
}

// CreateReplyRequest is the request body for replying to a comment.
type CreateReplyRequest struct {
	Content string `json:"content"`
}

// UpdateReplyRequest patches the reply content.
type UpdateReplyRequest struct {
	Content string `json:"content"`
}

var ErrReplyNotFound = errors.New("reply not found")
