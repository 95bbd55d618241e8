package service

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
	"chirpnet/internal/repository"
)

// FeedType selects which posts a feed request resolves. The set is
// closed: anything else yields an empty feed.
type FeedType string

const (
	FeedForYou    FeedType = "forYou" // the caller's own posts
	FeedFollowing FeedType = "following"
	FeedPosts     FeedType = "posts" // everyone's posts
	FeedLikes     FeedType = "likes"
	FeedSaved     FeedType = "saved"
)

// FeedResolveLimit caps how many ids a list-backed feed (likes, saved)
// resolves in one request.
const FeedResolveLimit = 500

// feedStrategy resolves one feed type for a user.
type feedStrategy interface {
	Fetch(ctx context.Context, userID bson.ObjectID) ([]model.Post, error)
}

// FeedService dispatches feed requests to a per-type strategy.
type FeedService struct {
	strategies map[FeedType]feedStrategy
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		strategies: map[FeedType]feedStrategy{
			FeedForYou:    &ownPostsFeed{postRepo: postRepo},
			FeedFollowing: &followingFeed{postRepo: postRepo, userRepo: userRepo},
			FeedPosts:     &allPostsFeed{postRepo: postRepo},
			FeedLikes:     &listFeed{postRepo: postRepo, userRepo: userRepo, pick: likedList},
			FeedSaved:     &listFeed{postRepo: postRepo, userRepo: userRepo, pick: savedList},
		},
	}
}

// Posts resolves a feed for the caller. Unknown feed types return an
// empty slice rather than an error.
func (s *FeedService) Posts(ctx context.Context, id auth.Identity, feedType FeedType) ([]model.Post, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	strategy, ok := s.strategies[feedType]
	if !ok {
		return []model.Post{}, nil
	}
	return strategy.Fetch(ctx, userID)
}

// allPostsFeed shows everything, newest first.
type allPostsFeed struct {
	postRepo repository.PostRepository
}

func (f *allPostsFeed) Fetch(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	return f.postRepo.FindAll(ctx)
}

// followingFeed concatenates the posts of each followed account, in
// following-list order, each author's posts newest first.
type followingFeed struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func (f *followingFeed) Fetch(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	user, err := f.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	feed := []model.Post{}
	for _, followedID := range user.Following {
		posts, err := f.postRepo.FindByUser(ctx, followedID)
		if err != nil {
			return nil, err
		}
		feed = append(feed, posts...)
	}
	return feed, nil
}

// ownPostsFeed shows the caller's own posts, newest first.
type ownPostsFeed struct {
	postRepo repository.PostRepository
}

func (f *ownPostsFeed) Fetch(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	return f.postRepo.FindByUser(ctx, userID)
}

func likedList(u *model.User) []bson.ObjectID { return u.LikedPosts }
func savedList(u *model.User) []bson.ObjectID { return u.SavedPosts }

// listFeed resolves a post id list stored on the user document (liked
// or saved posts), preserving the list's order. Ids whose post has
// since been deleted are skipped.
type listFeed struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	pick     func(*model.User) []bson.ObjectID
}

func (f *listFeed) Fetch(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	user, err := f.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := f.pick(user)
	if len(ids) > FeedResolveLimit {
		ids = ids[:FeedResolveLimit]
	}

	posts, err := f.postRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[bson.ObjectID]model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]model.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
