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

type commentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(col *mongo.Collection) CommentRepository {
	return &commentRepository{col: col}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.Replies == nil {
		comment.Replies = []bson.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		comment.ID = id
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) FindByPost(ctx context.Context, postID bson.ObjectID) ([]model.Comment, error) {
	cursor, err := r.col.Find(ctx, bson.M{"postId": postID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	var comments []model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	cursor, err := r.col.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find comment ids: %w", err)
	}
	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comment ids: %w", err)
	}
	ids := make([]bson.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by post: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *commentRepository) DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by user: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *commentRepository) AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$addToSet": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to add to %s: %w", field, err)
	}
	return nil
}

func (r *commentRepository) RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", field, err)
	}
	return nil
}

func (r *commentRepository) RemoveRepliesFromAll(ctx context.Context, replyIDs []bson.ObjectID) (int64, error) {
	if len(replyIDs) == 0 {
		return 0, nil
	}
	res, err := r.col.UpdateMany(ctx, bson.M{},
		bson.M{"$pull": bson.M{"replies": bson.M{"$in": replyIDs}}})
	if err != nil {
		return 0, fmt.Errorf("failed to remove replies from comments: %w", err)
	}
	return res.ModifiedCount, nil
}
