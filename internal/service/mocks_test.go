package service

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/model"
	"chirpnet/internal/queue"
)

// Hand-rolled mocks with function fields. Each test overrides only the
// behavior it cares about; everything else falls back to a harmless
// default. Calls are recorded so tests can assert on side effects.

type listCall struct {
	ID    bson.ObjectID
	Field string
	Value bson.ObjectID
}

type mockUserRepository struct {
	createFn             func(ctx context.Context, user *model.User) error
	getByIDFn            func(ctx context.Context, id bson.ObjectID) (*model.User, error)
	getByEmailFn         func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn      func(ctx context.Context, email string) (bool, error)
	existsByUsernameFn   func(ctx context.Context, username string) (bool, error)
	findAllFn            func(ctx context.Context) ([]model.User, error)
	getSummariesByIDsFn  func(ctx context.Context, ids []bson.ObjectID) ([]model.UserSummary, error)
	sampleFn             func(ctx context.Context, exclude bson.ObjectID, size int) ([]model.User, error)
	updateFn             func(ctx context.Context, user *model.User) error
	deleteByIDFn         func(ctx context.Context, id bson.ObjectID) (*model.User, error)
	addToListFn          func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	removeFromListFn     func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	removeFromAllListsFn func(ctx context.Context, id bson.ObjectID) (int64, error)

	createCalls         []*model.User
	updateCalls         []*model.User
	addToListCalls      []listCall
	removeFromListCalls []listCall
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = bson.NewObjectID()
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []model.User{}, nil
}

func (m *mockUserRepository) GetSummariesByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.UserSummary, error) {
	if m.getSummariesByIDsFn != nil {
		return m.getSummariesByIDsFn(ctx, ids)
	}
	summaries := make([]model.UserSummary, len(ids))
	for i, id := range ids {
		summaries[i] = model.UserSummary{ID: id}
	}
	return summaries, nil
}

func (m *mockUserRepository) Sample(ctx context.Context, exclude bson.ObjectID, size int) ([]model.User, error) {
	if m.sampleFn != nil {
		return m.sampleFn(ctx, exclude, size)
	}
	return []model.User{}, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	m.updateCalls = append(m.updateCalls, user)
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	m.addToListCalls = append(m.addToListCalls, listCall{ID: id, Field: field, Value: value})
	if m.addToListFn != nil {
		return m.addToListFn(ctx, id, field, value)
	}
	return nil
}

func (m *mockUserRepository) RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	m.removeFromListCalls = append(m.removeFromListCalls, listCall{ID: id, Field: field, Value: value})
	if m.removeFromListFn != nil {
		return m.removeFromListFn(ctx, id, field, value)
	}
	return nil
}

func (m *mockUserRepository) RemoveFromAllLists(ctx context.Context, id bson.ObjectID) (int64, error) {
	if m.removeFromAllListsFn != nil {
		return m.removeFromAllListsFn(ctx, id)
	}
	return 0, nil
}

type mockPostRepository struct {
	createFn           func(ctx context.Context, post *model.Post) error
	getByIDFn          func(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	getByIDsFn         func(ctx context.Context, ids []bson.ObjectID) ([]model.Post, error)
	findByUserFn       func(ctx context.Context, userID bson.ObjectID) ([]model.Post, error)
	findAllFn          func(ctx context.Context) ([]model.Post, error)
	findIDsByUserFn    func(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	updateFn           func(ctx context.Context, id bson.ObjectID, patch model.UpdatePostRequest) (*model.Post, error)
	deleteByIDFn       func(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	deleteManyByUserFn func(ctx context.Context, userID bson.ObjectID) (int64, error)
	addToListFn        func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	removeFromListFn   func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error

	createCalls         []*model.Post
	addToListCalls      []listCall
	removeFromListCalls []listCall
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.createCalls = append(m.createCalls, post)
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = bson.NewObjectID()
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Post, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	if m.findIDsByUserFn != nil {
		return m.findIDsByUserFn(ctx, userID)
	}
	return []bson.ObjectID{}, nil
}

func (m *mockPostRepository) Update(ctx context.Context, id bson.ObjectID, patch model.UpdatePostRequest) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	if m.deleteManyByUserFn != nil {
		return m.deleteManyByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockPostRepository) AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	m.addToListCalls = append(m.addToListCalls, listCall{ID: id, Field: field, Value: value})
	if m.addToListFn != nil {
		return m.addToListFn(ctx, id, field, value)
	}
	return nil
}

func (m *mockPostRepository) RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	m.removeFromListCalls = append(m.removeFromListCalls, listCall{ID: id, Field: field, Value: value})
	if m.removeFromListFn != nil {
		return m.removeFromListFn(ctx, id, field, value)
	}
	return nil
}

type mockCommentRepository struct {
	createFn           func(ctx context.Context, comment *model.Comment) error
	getByIDFn          func(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	findByPostFn       func(ctx context.Context, postID bson.ObjectID) ([]model.Comment, error)
	findIDsByUserFn    func(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	updateContentFn    func(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error)
	deleteByIDFn       func(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	deleteManyByPostFn func(ctx context.Context, postID bson.ObjectID) (int64, error)
	deleteManyByUserFn func(ctx context.Context, userID bson.ObjectID) (int64, error)
	addToListFn        func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error
	removeFromListFn   func(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error

	removeRepliesFromAllFn func(ctx context.Context, replyIDs []bson.ObjectID) (int64, error)

	createCalls         []*model.Comment
	addToListCalls      []listCall
	removeFromListCalls []listCall
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls = append(m.createCalls, comment)
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = bson.NewObjectID()
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) FindByPost(ctx context.Context, postID bson.ObjectID) ([]model.Comment, error) {
	if m.findByPostFn != nil {
		return m.findByPostFn(ctx, postID)
	}
	return []model.Comment{}, nil
}

func (m *mockCommentRepository) FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	if m.findIDsByUserFn != nil {
		return m.findIDsByUserFn(ctx, userID)
	}
	return []bson.ObjectID{}, nil
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	if m.deleteManyByPostFn != nil {
		return m.deleteManyByPostFn(ctx, postID)
	}
	return 0, nil
}

func (m *mockCommentRepository) DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	if m.deleteManyByUserFn != nil {
		return m.deleteManyByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockCommentRepository) AddToList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	m.addToListCalls = append(m.addToListCalls, listCall{ID: id, Field: field, Value: value})
	if m.addToListFn != nil {
		return m.addToListFn(ctx, id, field, value)
	}
	return nil
}

func (m *mockCommentRepository) RemoveFromList(ctx context.Context, id bson.ObjectID, field string, value bson.ObjectID) error {
	m.removeFromListCalls = append(m.removeFromListCalls, listCall{ID: id, Field: field, Value: value})
	if m.removeFromListFn != nil {
		return m.removeFromListFn(ctx, id, field, value)
	}
	return nil
}

func (m *mockCommentRepository) RemoveRepliesFromAll(ctx context.Context, replyIDs []bson.ObjectID) (int64, error) {
	if m.removeRepliesFromAllFn != nil {
		return m.removeRepliesFromAllFn(ctx, replyIDs)
	}
	return 0, nil
}

type mockReplyRepository struct {
	createFn              func(ctx context.Context, reply *model.Reply) error
	getByIDFn             func(ctx context.Context, id bson.ObjectID) (*model.Reply, error)
	findByCommentFn       func(ctx context.Context, commentID bson.ObjectID) ([]model.Reply, error)
	findIDsByUserFn       func(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)
	updateContentFn       func(ctx context.Context, id bson.ObjectID, content string) (*model.Reply, error)
	deleteByIDFn          func(ctx context.Context, id bson.ObjectID) (*model.Reply, error)
	deleteManyByCommentFn func(ctx context.Context, commentID bson.ObjectID) (int64, error)
	deleteManyByPostFn    func(ctx context.Context, postID bson.ObjectID) (int64, error)
	deleteManyByUserFn    func(ctx context.Context, userID bson.ObjectID) (int64, error)

	createCalls []*model.Reply
}

func (m *mockReplyRepository) Create(ctx context.Context, reply *model.Reply) error {
	m.createCalls = append(m.createCalls, reply)
	if m.createFn != nil {
		return m.createFn(ctx, reply)
	}
	reply.ID = bson.NewObjectID()
	return nil
}

func (m *mockReplyRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Reply, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrReplyNotFound
}

func (m *mockReplyRepository) FindIDsByUser(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	if m.findIDsByUserFn != nil {
		return m.findIDsByUserFn(ctx, userID)
	}
	return []bson.ObjectID{}, nil
}

func (m *mockReplyRepository) FindByComment(ctx context.Context, commentID bson.ObjectID) ([]model.Reply, error) {
	if m.findByCommentFn != nil {
		return m.findByCommentFn(ctx, commentID)
	}
	return []model.Reply{}, nil
}

func (m *mockReplyRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Reply, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return nil, model.ErrReplyNotFound
}

func (m *mockReplyRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (*model.Reply, error) {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil, model.ErrReplyNotFound
}

func (m *mockReplyRepository) DeleteManyByComment(ctx context.Context, commentID bson.ObjectID) (int64, error) {
	if m.deleteManyByCommentFn != nil {
		return m.deleteManyByCommentFn(ctx, commentID)
	}
	return 0, nil
}

func (m *mockReplyRepository) DeleteManyByPost(ctx context.Context, postID bson.ObjectID) (int64, error) {
	if m.deleteManyByPostFn != nil {
		return m.deleteManyByPostFn(ctx, postID)
	}
	return 0, nil
}

func (m *mockReplyRepository) DeleteManyByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	if m.deleteManyByUserFn != nil {
		return m.deleteManyByUserFn(ctx, userID)
	}
	return 0, nil
}

type mockNotificationRepository struct {
	createFn                func(ctx context.Context, from, to bson.ObjectID, kind string) error
	findByRecipientFn       func(ctx context.Context, to bson.ObjectID) ([]model.Notification, error)
	markAllReadFn           func(ctx context.Context, to bson.ObjectID) error
	deleteAllForRecipientFn func(ctx context.Context, to bson.ObjectID) (int64, error)

	createCalls      []notifyCall
	markAllReadCalls []bson.ObjectID
}

type notifyCall struct {
	From bson.ObjectID
	To   bson.ObjectID
	Kind string
}

func (m *mockNotificationRepository) Create(ctx context.Context, from, to bson.ObjectID, kind string) error {
	m.createCalls = append(m.createCalls, notifyCall{From: from, To: to, Kind: kind})
	if m.createFn != nil {
		return m.createFn(ctx, from, to, kind)
	}
	return nil
}

func (m *mockNotificationRepository) FindByRecipient(ctx context.Context, to bson.ObjectID) ([]model.Notification, error) {
	if m.findByRecipientFn != nil {
		return m.findByRecipientFn(ctx, to)
	}
	return []model.Notification{}, nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, to bson.ObjectID) error {
	m.markAllReadCalls = append(m.markAllReadCalls, to)
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, to)
	}
	return nil
}

func (m *mockNotificationRepository) DeleteAllForRecipient(ctx context.Context, to bson.ObjectID) (int64, error) {
	if m.deleteAllForRecipientFn != nil {
		return m.deleteAllForRecipientFn(ctx, to)
	}
	return 0, nil
}

type mockNotifier struct {
	notifyFn func(ctx context.Context, from, to bson.ObjectID, kind string) error

	calls []notifyCall
}

func (m *mockNotifier) Notify(ctx context.Context, from, to bson.ObjectID, kind string) error {
	// Self-directed notifications are skipped like the real thing.
	if from == to {
		return nil
	}
	m.calls = append(m.calls, notifyCall{From: from, To: to, Kind: kind})
	if m.notifyFn != nil {
		return m.notifyFn(ctx, from, to, kind)
	}
	return nil
}

type mockUploader struct {
	uploadFn  func(ctx context.Context, data string) (*model.UploadResult, error)
	destroyFn func(ctx context.Context, key string) error

	uploads  []string
	destroys []string
}

func (m *mockUploader) Upload(ctx context.Context, data string) (*model.UploadResult, error) {
	m.uploads = append(m.uploads, data)
	if m.uploadFn != nil {
		return m.uploadFn(ctx, data)
	}
	return &model.UploadResult{URL: "https://cdn.test/images/mock.jpg", Key: "images/mock.jpg"}, nil
}

func (m *mockUploader) Destroy(ctx context.Context, key string) error {
	if key != "" {
		m.destroys = append(m.destroys, key)
	}
	if m.destroyFn != nil {
		return m.destroyFn(ctx, key)
	}
	return nil
}

type mockPublisher struct {
	publishFn func(ctx context.Context, stream string, event queue.CascadeEvent) (string, error)

	events []queue.CascadeEvent
}

func (m *mockPublisher) Publish(ctx context.Context, stream string, event queue.CascadeEvent) (string, error) {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, stream, event)
	}
	return "1-0", nil
}
