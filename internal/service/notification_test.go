package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
)

func TestNotificationService_Notify_SkipsSelf(t *testing.T) {
	mockRepo := &mockNotificationRepository{}
	svc := NewNotificationService(mockRepo, &mockUserRepository{})

	selfID := bson.NewObjectID()
	if err := svc.Notify(context.Background(), selfID, selfID, model.NotificationTypeLike); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(mockRepo.createCalls) != 0 {
		t.Error("self-directed notification must not be stored")
	}
}

func TestNotificationService_Notify_Stores(t *testing.T) {
	mockRepo := &mockNotificationRepository{}
	svc := NewNotificationService(mockRepo, &mockUserRepository{})

	from := bson.NewObjectID()
	to := bson.NewObjectID()
	if err := svc.Notify(context.Background(), from, to, model.NotificationTypeFollow); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(mockRepo.createCalls) != 1 {
		t.Fatalf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
	call := mockRepo.createCalls[0]
	if call.From != from || call.To != to || call.Kind != model.NotificationTypeFollow {
		t.Errorf("unexpected call: %+v", call)
	}
}

// Listing returns the pre-update read flags while marking everything
// read for the next call.
func TestNotificationService_List_ReadOnList(t *testing.T) {
	callerID := bson.NewObjectID()
	actorID := bson.NewObjectID()
	now := time.Now()

	unread := []model.Notification{
		{ID: bson.NewObjectID(), From: actorID, To: callerID, Type: model.NotificationTypeLike, Read: false, CreatedAt: now},
		{ID: bson.NewObjectID(), From: actorID, To: callerID, Type: model.NotificationTypeFollow, Read: false, CreatedAt: now.Add(-time.Minute)},
		{ID: bson.NewObjectID(), From: actorID, To: callerID, Type: model.NotificationTypeComment, Read: true, CreatedAt: now.Add(-time.Hour)},
	}
	mockRepo := &mockNotificationRepository{
		findByRecipientFn: func(ctx context.Context, to bson.ObjectID) ([]model.Notification, error) {
			return unread, nil
		},
	}
	userRepo := &mockUserRepository{
		getSummariesByIDsFn: func(ctx context.Context, ids []bson.ObjectID) ([]model.UserSummary, error) {
			return []model.UserSummary{{ID: actorID, Username: "actor"}}, nil
		},
	}
	svc := NewNotificationService(mockRepo, userRepo)

	notifications, err := svc.ListForUser(context.Background(), authedIdentity(callerID))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(notifications) != 3 {
		t.Fatalf("got %d notifications, want 3", len(notifications))
	}

	// Pre-update flags survive
	if notifications[0].Read || notifications[1].Read {
		t.Error("first two notifications should still read as unread")
	}
	if !notifications[2].Read {
		t.Error("third notification was already read")
	}

	// Every sender resolved
	for i, n := range notifications {
		if n.Actor == nil || n.Actor.Username != "actor" {
			t.Errorf("notification %d missing actor summary", i)
		}
	}

	// Everything marked read for the next call
	if len(mockRepo.markAllReadCalls) != 1 || mockRepo.markAllReadCalls[0] != callerID {
		t.Errorf("MarkAllRead calls = %v, want one for the caller", mockRepo.markAllReadCalls)
	}
}

func TestNotificationService_List_RequiresAuth(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})

	_, err := svc.ListForUser(context.Background(), auth.Identity{})
	if !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestNotificationService_DeleteAll_ReportsWhetherAnyExisted(t *testing.T) {
	mockRepo := &mockNotificationRepository{
		deleteAllForRecipientFn: func(ctx context.Context, to bson.ObjectID) (int64, error) {
			return 3, nil
		},
	}
	svc := NewNotificationService(mockRepo, &mockUserRepository{})

	deleted, err := svc.DeleteAllForUser(context.Background(), authedIdentity(bson.NewObjectID()))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true when records were removed")
	}

	empty := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})
	deleted, err = empty.DeleteAllForUser(context.Background(), authedIdentity(bson.NewObjectID()))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false when nothing was removed")
	}
}
