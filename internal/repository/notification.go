package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"chirpnet/internal/model"
)

type notificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(col *mongo.Collection) NotificationRepository {
	return &notificationRepository{col: col}
}

func (r *notificationRepository) Create(ctx context.Context, from, to bson.ObjectID, kind string) error {
	notification := model.Notification{
		From:      from,
		To:        to,
		Type:      kind,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if _, err := r.col.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, to bson.ObjectID) ([]model.Notification, error) {
	cursor, err := r.col.Find(ctx, bson.M{"to": to}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	var notifications []model.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, to bson.ObjectID) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"to": to, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) DeleteAllForRecipient(ctx context.Context, to bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"to": to})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return res.DeletedCount, nil
}
