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

// PostService handles posts and the toggles hanging off them: likes
// (mirrored into the liker's list) and saves (one-directional).
type PostService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	media     Uploader
	notifier  Notifier
	publisher queue.Publisher
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	media Uploader,
	notifier Notifier,
	publisher queue.Publisher,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		media:     media,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Add creates a post for the caller, uploading the optional inline
// image first, and registers the post id on the author's document.
func (s *PostService) Add(ctx context.Context, id auth.Identity, req model.CreatePostRequest) (*model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, model.ErrPostContentMissing
	}

	post := &model.Post{
		Content: req.Content,
		UserID:  userID,
	}
	if req.Image != "" {
		uploaded, err := s.media.Upload(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = uploaded.URL
		post.ImageKey = uploaded.Key
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddToList(ctx, userID, repository.FieldPosts, post.ID); err != nil {
		log.Printf("[PostService] Failed to register post on author: post=%s err=%v", post.ID.Hex(), err)
	}

	return post, nil
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id auth.Identity, postID bson.ObjectID) (*model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// UserPosts returns a user's posts, newest first.
func (s *PostService) UserPosts(ctx context.Context, id auth.Identity, userID bson.ObjectID) ([]model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	return s.postRepo.FindByUser(ctx, userID)
}

// Update patches a post's content or image URL. Only the author may
// update.
func (s *PostService) Update(ctx context.Context, id auth.Identity, postID bson.ObjectID, req model.UpdatePostRequest) (*model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, auth.ErrForbidden
	}

	return s.postRepo.Update(ctx, postID, req)
}

// Delete removes a post. The author or an admin may delete. The post
// document, its list entry on the author and its stored image go
// synchronously; comments and replies are removed by the cascade
// worker.
func (s *PostService) Delete(ctx context.Context, id auth.Identity, postID bson.ObjectID) (*model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID && id.Role != auth.RoleAdmin {
		return nil, auth.ErrForbidden
	}

	deleted, err := s.postRepo.DeleteByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.RemoveFromList(ctx, deleted.UserID, repository.FieldPosts, postID); err != nil {
		log.Printf("[PostService] Failed to unregister post on author: post=%s err=%v", postID.Hex(), err)
	}
	if err := s.media.Destroy(ctx, deleted.ImageKey); err != nil {
		log.Printf("[PostService] Failed to destroy post image: post=%s err=%v", postID.Hex(), err)
	}

	event := queue.NewPostDeletedEvent(postID.Hex())
	if _, err := s.publisher.Publish(ctx, queue.StreamCascade, event); err != nil {
		log.Printf("[PostService] Failed to publish PostDeleted event: post=%s err=%v", postID.Hex(), err)
	}

	return deleted, nil
}

// Like toggles the caller's like on a post and mirrors it into the
// caller's liked list. Liking notifies the author unless the caller is
// the author. Returns the post's updated state, or nil when the target
// id is the caller's own account id.
func (s *PostService) Like(ctx context.Context, id auth.Identity, postID bson.ObjectID) (*model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	if userID == postID {
		return nil, nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := false
	for _, l := range post.Likes {
		if l == userID {
			liked = true
			break
		}
	}

	if liked {
		if err := s.postRepo.RemoveFromList(ctx, postID, repository.FieldLikes, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.RemoveFromList(ctx, userID, repository.FieldLikedPosts, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.AddToList(ctx, postID, repository.FieldLikes, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.AddToList(ctx, userID, repository.FieldLikedPosts, postID); err != nil {
			return nil, err
		}
		if err := s.notifier.Notify(ctx, userID, post.UserID, model.NotificationTypeLike); err != nil {
			log.Printf("[PostService] Failed to notify like: post=%s err=%v", postID.Hex(), err)
		}
	}

	return s.postRepo.GetByID(ctx, postID)
}

// Save toggles the post in the caller's saved list and reports whether
// the post is saved after this call. Saves are one-directional: nothing
// is recorded on the post and nobody is notified.
func (s *PostService) Save(ctx context.Context, id auth.Identity, postID bson.ObjectID) (bool, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return false, err
	}
	userID, err := callerID(id)
	if err != nil {
		return false, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, saved := range user.SavedPosts {
		if saved == postID {
			if err := s.userRepo.RemoveFromList(ctx, userID, repository.FieldSavedPosts, postID); err != nil {
				return false, err
			}
			return false, nil
		}
	}

	if err := s.userRepo.AddToList(ctx, userID, repository.FieldSavedPosts, postID); err != nil {
		return false, err
	}
	return true, nil
}

// Likers resolves a post's like list to user summaries.
func (s *PostService) Likers(ctx context.Context, id auth.Identity, postID bson.ObjectID) ([]model.UserSummary, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetSummariesByIDs(ctx, post.Likes)
}
