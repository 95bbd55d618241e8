package service

import (
	"context"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
	"chirpnet/internal/queue"
	"chirpnet/internal/repository"
)

// CommentService handles comments and their replies. A comment tracks
// its reply ids; replies also carry the post id so a post deletion can
// sweep them without walking the comment tree.
type CommentService struct {
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	postRepo    repository.PostRepository
	notifier    Notifier
	publisher   queue.Publisher
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
	postRepo repository.PostRepository,
	notifier Notifier,
	publisher queue.Publisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
		postRepo:    postRepo,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// Add creates a comment on a post and notifies the post's author
// unless the caller is the author.
func (s *CommentService) Add(ctx context.Context, id auth.Identity, postID bson.ObjectID, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: req.Content,
		PostID:  postID,
		UserID:  userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, userID, post.UserID, model.NotificationTypeComment); err != nil {
		log.Printf("[CommentService] Failed to notify comment: comment=%s err=%v", comment.ID.Hex(), err)
	}

	return comment, nil
}

// Get returns a single comment.
func (s *CommentService) Get(ctx context.Context, id auth.Identity, commentID bson.ObjectID) (*model.Comment, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

// ForPost returns a post's comments, newest first.
func (s *CommentService) ForPost(ctx context.Context, id auth.Identity, postID bson.ObjectID) ([]model.Comment, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByPost(ctx, postID)
}

// Update rewrites a comment's content. Only the author may update.
func (s *CommentService) Update(ctx context.Context, id auth.Identity, commentID bson.ObjectID, req model.UpdateCommentRequest) (*model.Comment, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, auth.ErrForbidden
	}

	return s.commentRepo.UpdateContent(ctx, commentID, req.Content)
}

// Delete removes a comment. The author or an admin may delete. Replies
// are removed by the cascade worker.
func (s *CommentService) Delete(ctx context.Context, id auth.Identity, commentID bson.ObjectID) (*model.Comment, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID && id.Role != auth.RoleAdmin {
		return nil, auth.ErrForbidden
	}

	deleted, err := s.commentRepo.DeleteByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	event := queue.NewCommentDeletedEvent(commentID.Hex())
	if _, err := s.publisher.Publish(ctx, queue.StreamCascade, event); err != nil {
		log.Printf("[CommentService] Failed to publish CommentDeleted event: comment=%s err=%v", commentID.Hex(), err)
	}

	return deleted, nil
}

// AddReply creates a reply under a comment and registers the reply id
// on the comment document. The reply inherits the comment's post id.
func (s *CommentService) AddReply(ctx context.Context, id auth.Identity, commentID bson.ObjectID, req model.CreateReplyRequest) (*model.Reply, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	reply := &model.Reply{
		Content:   req.Content,
		PostID:    comment.PostID,
		CommentID: commentID,
		UserID:    userID,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	if err := s.commentRepo.AddToList(ctx, commentID, repository.FieldReplies, reply.ID); err != nil {
		log.Printf("[CommentService] Failed to register reply on comment: reply=%s err=%v", reply.ID.Hex(), err)
	}

	return reply, nil
}

// Replies returns a comment's replies, newest first.
func (s *CommentService) Replies(ctx context.Context, id auth.Identity, commentID bson.ObjectID) ([]model.Reply, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	return s.replyRepo.FindByComment(ctx, commentID)
}

// UpdateReply rewrites a reply's content. Only the author may update.
func (s *CommentService) UpdateReply(ctx context.Context, id auth.Identity, replyID bson.ObjectID, req model.UpdateReplyRequest) (*model.Reply, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrContentRequired
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply.UserID != userID {
		return nil, auth.ErrForbidden
	}

	return s.replyRepo.UpdateContent(ctx, replyID, req.Content)
}

// DeleteReply removes a reply and unregisters it from its parent
// comment. The author or an admin may delete.
func (s *CommentService) DeleteReply(ctx context.Context, id auth.Identity, replyID bson.ObjectID) (*model.Reply, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply.UserID != userID && id.Role != auth.RoleAdmin {
		return nil, auth.ErrForbidden
	}

	deleted, err := s.replyRepo.DeleteByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.RemoveFromList(ctx, deleted.CommentID, repository.FieldReplies, replyID); err != nil {
		log.Printf("[CommentService] Failed to unregister reply on comment: reply=%s err=%v", replyID.Hex(), err)
	}

	return deleted, nil
}
