package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"chirpnet/internal/model"
)

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) UserRepository {
	return &userRepository{col: col}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Followers == nil {
		user.Followers = []bson.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []bson.ObjectID{}
	}
	if user.Posts == nil {
		user.Posts = []bson.ObjectID{}
	}
	if user.LikedPosts == nil {
		user.LikedPosts = []bson.ObjectID{}
	}
	if user.SavedPosts == nil {
		user.SavedPosts = []bson.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetSummariesByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.UserSummary, error) {
	if len(ids) == 0 {
		return []model.UserSummary{}, nil
	}

	projection := bson.M{"_id": 1, "fullname": 1, "username": 1}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("failed to get user summaries: %w", err)
	}

	var found []model.UserSummary
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode user summaries: %w", err)
	}

	// Preserve the order of the input id list.
	byID := make(map[bson.ObjectID]model.UserSummary, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	summaries := make([]model.UserSummary, 0, len(found))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			summaries = append(summaries, s)
		}
	}
	return summaries, nil
}

func (r *userRepository) Sample(ctx context.Context, exclude bson.ObjectID, size int) ([]model.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": exclude}}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample users: %w", err)
	}
	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode sampled users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var user model.User
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &user, nil
}

// AddToList inserts an id into a denormalized list field. $addToSet
// keeps retries and double-toggles from duplicating entries.
func (r *userRepository) AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to add to %s: %w", field, err)
	}
	return nil
}

// RemoveFromList removes an id from a denormalized list field.
// Removing an absent id is a no-op.
func (r *userRepository) RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", field, err)
	}
	return nil
}

func (r *userRepository) RemoveFromAllLists(ctx context.Context, id bson.ObjectID) (int64, error) {
	update := bson.M{"$pull": bson.M{
		FieldFollowers: id,
		FieldFollowing: id,
	}}
	res, err := r.col.UpdateMany(ctx, bson.M{}, update)
	if err != nil {
		return 0, fmt.Errorf("failed to clean relationship lists: %w", err)
	}
	return res.ModifiedCount, nil
}
