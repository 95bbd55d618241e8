package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/queue"
)

// ReplyCleaner removes replies in bulk. Abstracts the repository layer
// so workers don't depend on the full repository interfaces.
type ReplyCleaner interface {
	FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	DeleteManyByComment(ctx context.Context, commentID bson.ObjectID) (int64, error)
	DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
	DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

// CommentCleaner removes comments in bulk, enumerates a user's comment
// ids so their replies can be swept first, and strips deleted reply
// ids from surviving comments' reply lists.
type CommentCleaner interface {
	FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error)
	DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
	RemoveRepliesFromAll(ctx context.Context, replyIDs []bson.ObjectID) (int64, error)
}

// PostCleaner removes posts in bulk and enumerates a user's post ids
// so each post's own dependents can be swept first.
type PostCleaner interface {
	FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

// UserListCleaner strips a deleted user's id from every remaining
// user's relationship lists.
type UserListCleaner interface {
	RemoveFromAllLists(ctx context.Context, id bson.ObjectID) (int64, error)
}

// Handler processes cascade events from the queue. Every handler is
// idempotent: replaying an event deletes nothing new.
type Handler struct {
	posts    PostCleaner
	comments CommentCleaner
	replies  ReplyCleaner
	users    UserListCleaner
}

// NewHandler creates a new event handler.
func NewHandler(posts PostCleaner, comments CommentCleaner, replies ReplyCleaner, users UserListCleaner) *Handler {
	return &Handler{
		posts:    posts,
		comments: comments,
		replies:  replies,
		users:    users,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.CascadeEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventPostDeleted:
		err = h.handlePostDeleted(ctx, event)
	case queue.EventCommentDeleted:
		err = h.handleCommentDeleted(ctx, event)
	case queue.EventUserDeleted:
		err = h.handleUserDeleted(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s duration=%v", event.Type, time.Since(startTime))
	return nil
}

// handlePostDeleted removes a deleted post's comments and replies.
func (h *Handler) handlePostDeleted(ctx context.Context, event queue.CascadeEvent) error {
	postID, err := bson.ObjectIDFromHex(event.PostID)
	if err != nil {
		return fmt.Errorf("invalid post id %q: %w", event.PostID, err)
	}

	comments, err := h.comments.DeleteManyByPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	replies, err := h.replies.DeleteManyByPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}

	log.Printf("[Worker] PostDeleted DONE: post=%s comments=%d replies=%d",
		event.PostID, comments, replies)
	return nil
}

// handleCommentDeleted removes a deleted comment's replies.
func (h *Handler) handleCommentDeleted(ctx context.Context, event queue.CascadeEvent) error {
	commentID, err := bson.ObjectIDFromHex(event.CommentID)
	if err != nil {
		return fmt.Errorf("invalid comment id %q: %w", event.CommentID, err)
	}

	replies, err := h.replies.DeleteManyByComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}

	log.Printf("[Worker] CommentDeleted DONE: comment=%s replies=%d", event.CommentID, replies)
	return nil
}

// handleUserDeleted removes everything a deleted account left behind:
// each of their posts with its comments and replies, replies under
// their own comments, then their comments and replies elsewhere, their
// reply ids in surviving comments' lists, and finally their id in
// other users' relationship lists.
func (h *Handler) handleUserDeleted(ctx context.Context, event queue.CascadeEvent) error {
	userID, err := bson.ObjectIDFromHex(event.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", event.UserID, err)
	}

	postIDs, err := h.posts.FindIDsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	for _, postID := range postIDs {
		if _, err := h.comments.DeleteManyByPost(ctx, postID); err != nil {
			return fmt.Errorf("delete comments of post %s: %w", postID.Hex(), err)
		}
		if _, err := h.replies.DeleteManyByPost(ctx, postID); err != nil {
			return fmt.Errorf("delete replies of post %s: %w", postID.Hex(), err)
		}
	}

	commentIDs, err := h.comments.FindIDsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	for _, commentID := range commentIDs {
		if _, err := h.replies.DeleteManyByComment(ctx, commentID); err != nil {
			return fmt.Errorf("delete replies of comment %s: %w", commentID.Hex(), err)
		}
	}

	// The user's replies under other users' comments leave those
	// comments' reply lists stale once deleted, so enumerate them first
	// and pull them afterwards.
	replyIDs, err := h.replies.FindIDsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list replies: %w", err)
	}

	posts, err := h.posts.DeleteManyByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	comments, err := h.comments.DeleteManyByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	replies, err := h.replies.DeleteManyByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}
	if len(replyIDs) > 0 {
		if _, err := h.comments.RemoveRepliesFromAll(ctx, replyIDs); err != nil {
			return fmt.Errorf("clean reply lists: %w", err)
		}
	}
	mentions, err := h.users.RemoveFromAllLists(ctx, userID)
	if err != nil {
		return fmt.Errorf("clean relationship lists: %w", err)
	}

	log.Printf("[Worker] UserDeleted DONE: user=%s posts=%d comments=%d replies=%d lists=%d",
		event.UserID, posts, comments, replies, mentions)
	return nil
}
