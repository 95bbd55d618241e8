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

type replyRepository struct {
	col *mongo.Collection
}

func NewReplyRepository(col *mongo.Collection) ReplyRepository {
	return &replyRepository{col: col}
}

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}

	res, err := r.col.InsertOne(ctx, reply)
	if err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		reply.ID = id
	}
	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Reply, error) {
	var reply model.Reply
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&reply)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrReplyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}
	return &reply, nil
}

func (r *replyRepository) FindByComment(ctx context.Context, commentID bson.ObjectID) ([]model.Reply, error) {
	cursor, err := r.col.Find(ctx, bson.M{"commentId": commentID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find replies: %w", err)
	}
	var replies []model.Reply
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, fmt.Errorf("failed to decode replies: %w", err)
	}
	return replies, nil
}

func (r *replyRepository) FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	cursor, err := r.col.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to find reply ids: %w", err)
	}
	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reply ids: %w", err)
	}
	ids := make([]bson.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (r *replyRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Reply, error) {
	var reply model.Reply
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&reply)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrReplyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update reply: %w", err)
	}
	return &reply, nil
}

func (r *replyRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Reply, error) {
	var reply model.Reply
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&reply)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrReplyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete reply: %w", err)
	}
	return &reply, nil
}

func (r *replyRepository) DeleteManyByComment(ctx context.Context, commentID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"commentId": commentID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete replies by comment: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *replyRepository) DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete replies by post: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *replyRepository) DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete replies by user: %w", err)
	}
	return res.DeletedCount, nil
}
