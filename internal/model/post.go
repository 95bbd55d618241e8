package model

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post represents a user's post. Likes holds the ids of users who
// liked it and mirrors each liker's LikedPosts list.
type Post struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Content   string          `bson:"content" json:"content"`
	UserID    bson.ObjectID   `bson:"userId" json:"user_id"`
	Likes     []bson.ObjectID `bson:"likes" json:"likes"`
	ImageURL  string          `bson:"imageUrl" json:"image_url"`
	ImageKey  string          `bson:"imageKey,omitempty" json:"-"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}

// CreatePostRequest is the request body for creating a post. Image is
// optional base64 data handed to the media collaborator.
type CreatePostRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

// UpdatePostRequest patches post fields; nil leaves a field untouched.
type UpdatePostRequest struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrPostContentMissing = errors.New("post content is required")
)
