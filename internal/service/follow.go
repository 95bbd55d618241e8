package service

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
	"chirpnet/internal/repository"
)

// FollowService toggles follow relationships and keeps the two mirror
// lists consistent: the caller's following list and the target's
// follower list are always updated in the same call.
type FollowService struct {
	userRepo repository.UserRepository
	notifier Notifier
}

func NewFollowService(userRepo repository.UserRepository, notifier Notifier) *FollowService {
	return &FollowService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// FollowUnfollow toggles the relationship between the caller and the
// target: following when absent, unfollowing when present. Following
// yourself is a silent no-op. Returns the target's updated account, or
// nil for the self case.
func (s *FollowService) FollowUnfollow(ctx context.Context, id auth.Identity, targetID bson.ObjectID) (*model.User, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}
	if userID == targetID {
		return nil, nil
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	following := false
	for _, f := range target.Followers {
		if f == userID {
			following = true
			break
		}
	}

	if following {
		if err := s.userRepo.RemoveFromList(ctx, targetID, repository.FieldFollowers, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.RemoveFromList(ctx, userID, repository.FieldFollowing, targetID); err != nil {
			return nil, err
		}
	} else {
		if err := s.userRepo.AddToList(ctx, targetID, repository.FieldFollowers, userID); err != nil {
			return nil, err
		}
		if err := s.userRepo.AddToList(ctx, userID, repository.FieldFollowing, targetID); err != nil {
			return nil, err
		}
		if err := s.notifier.Notify(ctx, userID, targetID, model.NotificationTypeFollow); err != nil {
			// The follow itself succeeded.
			log.Printf("[FollowService] Failed to notify follow: from=%s to=%s err=%v",
				userID.Hex(), targetID.Hex(), err)
		}
	}

	return s.userRepo.GetByID(ctx, targetID)
}
