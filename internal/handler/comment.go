package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/httputil"
	"chirpnet/internal/model"
	"chirpnet/internal/service"
	"chirpnet/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create handles POST /posts/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Add(r.Context(), id, postID, req)
	if err != nil {
		respondError(w, "Create comment handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// ListForPost handles GET /posts/{id}/comments
func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	comments, err := h.commentService.ForPost(r.Context(), id, postID)
	if err != nil {
		respondError(w, "List comments handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// GetByID handles GET /comments/{id}
func (h *CommentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	commentID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid comment ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	comment, err := h.commentService.Get(r.Context(), id, commentID)
	if err != nil {
		respondError(w, "Get comment handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Update handles PUT /comments/{id}
// Rewrites a comment's content. Author only.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid comment ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), id, commentID, req)
	if err != nil {
		respondError(w, "Update comment handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /comments/{id}
// Removes a comment. Author or admin.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid comment ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	comment, err := h.commentService.Delete(r.Context(), id, commentID)
	if err != nil {
		respondError(w, "Delete comment handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// CreateReply handles POST /comments/{id}/replies
func (h *CommentHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	commentID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid comment ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	var req model.CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	reply, err := h.commentService.AddReply(r.Context(), id, commentID, req)
	if err != nil {
		respondError(w, "Create reply handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, reply)
}

// ListReplies handles GET /comments/{id}/replies
func (h *CommentHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	commentID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid comment ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	replies, err := h.commentService.Replies(r.Context(), id, commentID)
	if err != nil {
		respondError(w, "List replies handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, replies)
}

// UpdateReply handles PUT /replies/{id}
// Rewrites a reply's content. Author only.
func (h *CommentHandler) UpdateReply(w http.ResponseWriter, r *http.Request) {
	replyID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid reply ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	var req model.UpdateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	reply, err := h.commentService.UpdateReply(r.Context(), id, replyID, req)
	if err != nil {
		respondError(w, "Update reply handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reply)
}

// DeleteReply handles DELETE /replies/{id}
// Removes a reply. Author or admin.
func (h *CommentHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	replyID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid reply ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	reply, err := h.commentService.DeleteReply(r.Context(), id, replyID)
	if err != nil {
		respondError(w, "Delete reply handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reply)
}
