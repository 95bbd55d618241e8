package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
	"chirpnet/internal/repository"
)

// statefulUserRepo keeps follower/following lists in memory so toggle
// tests can exercise both directions of the mirror.
func statefulUserRepo(users map[bson.ObjectID]*model.User) *mockUserRepository {
	contains := func(list []bson.ObjectID, id bson.ObjectID) bool {
		for _, v := range list {
			if v == id {
				return true
			}
		}
		return false
	}
	remove := func(list []bson.ObjectID, id bson.ObjectID) []bson.ObjectID {
		out := list[:0]
		for _, v := range list {
			if v != id {
				out = append(out, v)
			}
		}
		return out
	}

	repo := &mockUserRepository{}
	repo.getByIDFn = func(ctx context.Context, id bson.ObjectID) (*model.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		return nil, model.ErrUserNotFound
	}
	repo.addToListFn = func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
		u, ok := users[id]
		if !ok {
			return model.ErrUserNotFound
		}
		switch field {
		case repository.FieldFollowers:
			if !contains(u.Followers, value) {
				u.Followers = append(u.Followers, value)
			}
		case repository.FieldFollowing:
			if !contains(u.Following, value) {
				u.Following = append(u.Following, value)
			}
		}
		return nil
	}
	repo.removeFromListFn = func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
		u, ok := users[id]
		if !ok {
			return model.ErrUserNotFound
		}
		switch field {
		case repository.FieldFollowers:
			u.Followers = remove(u.Followers, value)
		case repository.FieldFollowing:
			u.Following = remove(u.Following, value)
		}
		return nil
	}
	return repo
}

func TestFollowService_Follow_UpdatesBothMirrors(t *testing.T) {
	callerID := bson.NewObjectID()
	targetID := bson.NewObjectID()
	users := map[bson.ObjectID]*model.User{
		callerID: {ID: callerID},
		targetID: {ID: targetID},
	}
	notifier := &mockNotifier{}
	svc := NewFollowService(statefulUserRepo(users), notifier)

	updated, err := svc.FollowUnfollow(context.Background(), authedIdentity(callerID), targetID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(updated.Followers) != 1 || updated.Followers[0] != callerID {
		t.Errorf("target followers = %v, want [caller]", updated.Followers)
	}
	if len(users[callerID].Following) != 1 || users[callerID].Following[0] != targetID {
		t.Errorf("caller following = %v, want [target]", users[callerID].Following)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notified %d times, want 1", len(notifier.calls))
	}
	if notifier.calls[0].Kind != model.NotificationTypeFollow {
		t.Errorf("notification kind = %q, want %q", notifier.calls[0].Kind, model.NotificationTypeFollow)
	}
	if notifier.calls[0].To != targetID {
		t.Error("notification should go to the followed user")
	}
}

// Toggling twice restores the original state and only the first toggle
// notifies.
func TestFollowService_DoubleToggle_RestoresState(t *testing.T) {
	callerID := bson.NewObjectID()
	targetID := bson.NewObjectID()
	users := map[bson.ObjectID]*model.User{
		callerID: {ID: callerID},
		targetID: {ID: targetID},
	}
	notifier := &mockNotifier{}
	svc := NewFollowService(statefulUserRepo(users), notifier)

	if _, err := svc.FollowUnfollow(context.Background(), authedIdentity(callerID), targetID); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	updated, err := svc.FollowUnfollow(context.Background(), authedIdentity(callerID), targetID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	if len(updated.Followers) != 0 {
		t.Errorf("target followers = %v, want empty", updated.Followers)
	}
	if len(users[callerID].Following) != 0 {
		t.Errorf("caller following = %v, want empty", users[callerID].Following)
	}
	if len(notifier.calls) != 1 {
		t.Errorf("notified %d times, want 1 (unfollow must not notify)", len(notifier.calls))
	}
}

// Following yourself is a silent no-op: nil result, no error, no
// mutation, no notification.
func TestFollowService_SelfFollow_NoOp(t *testing.T) {
	callerID := bson.NewObjectID()
	users := map[bson.ObjectID]*model.User{
		callerID: {ID: callerID},
	}
	notifier := &mockNotifier{}
	repo := statefulUserRepo(users)
	svc := NewFollowService(repo, notifier)

	updated, err := svc.FollowUnfollow(context.Background(), authedIdentity(callerID), callerID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated != nil {
		t.Error("self follow should return nil")
	}
	if len(users[callerID].Followers) != 0 || len(users[callerID].Following) != 0 {
		t.Error("self follow must not mutate any list")
	}
	if len(notifier.calls) != 0 {
		t.Error("self follow must not notify")
	}
}

func TestFollowService_RequiresAuth(t *testing.T) {
	svc := NewFollowService(&mockUserRepository{}, &mockNotifier{})

	_, err := svc.FollowUnfollow(context.Background(), auth.Identity{}, bson.NewObjectID())
	if !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestFollowService_TargetNotFound(t *testing.T) {
	svc := NewFollowService(&mockUserRepository{}, &mockNotifier{})

	_, err := svc.FollowUnfollow(context.Background(), authedIdentity(bson.NewObjectID()), bson.NewObjectID())
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}
