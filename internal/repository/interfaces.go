package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/model"
)

// Denormalized list fields accepted by AddToList/RemoveFromList.
const (
	FieldFollowers  = "followers"
	FieldFollowing  = "following"
	FieldPosts      = "posts"
	FieldLikedPosts = "likedPosts"
	FieldSavedPosts = "savedPosts"
	FieldLikes      = "likes"
	FieldReplies    = "replies"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindAll(ctx context.Context) ([]model.User, error)
	// GetSummariesByIDs resolves an id list to lightweight summaries;
	// ids with no backing document are skipped.
	GetSummariesByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.UserSummary, error)
	// Sample returns up to size random users excluding the given id.
	Sample(ctx context.Context, exclude bson.ObjectID, size int) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	DeleteByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	// RemoveFromAllLists strips the id from every user's relationship
	// lists. Used when the referenced user is deleted.
	RemoveFromAllLists(ctx context.Context, id bson.ObjectID) (int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	// GetByIDs returns the posts backing the given ids; missing ids are
	// skipped. Order is unspecified, callers re-order as needed.
	GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Post, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	Update(ctx context.Context, id bson.ObjectID, patch model.UpdatePostRequest) (*model.Post, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
	AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	FindByPost(ctx context.Context, postID bson.ObjectID) ([]model.Comment, error)
	FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
	DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
	AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	// RemoveRepliesFromAll pulls the given reply ids out of every
	// comment's reply list. Used when the replies' author is deleted and
	// the parent comments survive.
	RemoveRepliesFromAll(ctx context.Context, replyIDs []bson.ObjectID) (int64, error)
}

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Reply, error)
	FindByComment(ctx context.Context, commentID bson.ObjectID) ([]model.Reply, error)
	FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Reply, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Reply, error)
	DeleteManyByComment(ctx context.Context, commentID bson.ObjectID) (int64, error)
	DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
	DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, from, to bson.ObjectID, kind string) error
	// FindByRecipient returns all notifications addressed to the user,
	// newest first.
	FindByRecipient(ctx context.Context, to bson.ObjectID) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, to bson.ObjectID) error
	DeleteAllForRecipient(ctx context.Context, to bson.ObjectID) (int64, error)
}
