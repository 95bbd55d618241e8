package service

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/model"
	"chirpnet/internal/repository"
)

// Notifier records a notification as a side effect of a social action.
// Satisfied by NotificationService; mocked in tests.
type Notifier interface {
	Notify(ctx context.Context, from, to bson.ObjectID, kind string) error
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify records a notification from one user to another. Self-directed
// notifications are silently skipped so callers never have to check.
func (s *NotificationService) Notify(ctx context.Context, from, to bson.ObjectID, kind string) error {
	if from == to {
		return nil
	}
	if err := s.notificationRepo.Create(ctx, from, to, kind); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// ListForUser returns the caller's notifications, newest first, with
// each sender resolved to a summary. Listing marks everything read, but
// the returned records carry the read flags from before this call so
// clients can still highlight what was unseen.
func (s *NotificationService) ListForUser(ctx context.Context, id auth.Identity) ([]model.Notification, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	userID, err := callerID(id)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.FindByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Resolve each sender once.
	seen := make(map[bson.ObjectID]bool, len(notifications))
	fromIDs := make([]bson.ObjectID, 0, len(notifications))
	for _, n := range notifications {
		if !seen[n.From] {
			seen[n.From] = true
			fromIDs = append(fromIDs, n.From)
		}
	}
	summaries, err := s.userRepo.GetSummariesByIDs(ctx, fromIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]model.UserSummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	for i := range notifications {
		if sum, ok := byID[notifications[i].From]; ok {
			actor := sum
			notifications[i].Actor = &actor
		}
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		// The list itself is good; losing the read marker is recoverable
		// on the next call.
		log.Printf("[NotificationService] Failed to mark notifications read: user=%s err=%v", id.UserID, err)
	}

	return notifications, nil
}

// DeleteAllForUser removes every notification addressed to the caller
// and reports whether anything was deleted.
func (s *NotificationService) DeleteAllForUser(ctx context.Context, id auth.Identity) (bool, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return false, err
	}
	userID, err := callerID(id)
	if err != nil {
		return false, err
	}

	deleted, err := s.notificationRepo.DeleteAllForRecipient(ctx, userID)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// callerID converts the identity's user id to an object id.
func callerID(id auth.Identity) (bson.ObjectID, error) {
	objID, err := bson.ObjectIDFromHex(id.UserID)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("invalid caller id: %w", err)
	}
	return objID, nil
}
