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

// newestFirst sorts by creation time, most recent first.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

type postRepository struct {
	col *mongo.Collection
}

func NewPostRepository(col *mongo.Collection) PostRepository {
	return &postRepository{col: col}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []bson.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		post.ID = id
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var post model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Post, error) {
	if len(ids) == 0 {
		return []model.Post{}, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by ids: %w", err)
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	cursor, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find posts by user: %w", err)
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	var posts []model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	cursor, err := r.col.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find post ids: %w", err)
	}
	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode post ids: %w", err)
	}
	ids := make([]bson.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (r *postRepository) Update(ctx context.Context, id bson.ObjectID, patch model.UpdatePostRequest) (*model.Post, error) {
	set := bson.M{}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var post model.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var post model.Post
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts by user: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *postRepository) AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to add to %s: %w", field, err)
	}
	return nil
}

func (r *postRepository) RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", field, err)
	}
	return nil
}
