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

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create handles POST /posts
// Creates a post for the caller, with an optional inline image.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	post, err := h.postService.Add(r.Context(), id, req)
	if err != nil {
		respondError(w, "Create post handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// GetByID handles GET /posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	post, err := h.postService.Get(r.Context(), id, postID)
	if err != nil {
		respondError(w, "Get post handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Update handles PUT /posts/{id}
// Patches a post's content or image URL. Author only.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), id, postID, req)
	if err != nil {
		respondError(w, "Update post handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}
// Removes a post. Author or admin.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	post, err := h.postService.Delete(r.Context(), id, postID)
	if err != nil {
		respondError(w, "Delete post handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Like handles POST /posts/{id}/like
// Toggles the caller's like on the post.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	post, err := h.postService.Like(r.Context(), id, postID)
	if err != nil {
		respondError(w, "Like handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Save handles POST /posts/{id}/save
// Toggles the post in the caller's saved list.
func (h *PostHandler) Save(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	saved, err := h.postService.Save(r.Context(), id, postID)
	if err != nil {
		respondError(w, "Save handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// Likes handles GET /posts/{id}/likes
// Returns the users who liked the post.
func (h *PostHandler) Likes(w http.ResponseWriter, r *http.Request) {
	postID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid post ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	likers, err := h.postService.Likers(r.Context(), id, postID)
	if err != nil {
		respondError(w, "Likes handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, likers)
}
