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

type UserHandler struct {
	userService   *service.UserService
	followService *service.FollowService
	postService   *service.PostService
}

func NewUserHandler(
	userService *service.UserService,
	followService *service.FollowService,
	postService *service.PostService,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		followService: followService,
		postService:   postService,
	}
}

// List handles GET /users
// Returns every account. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	users, err := h.userService.List(r.Context(), id)
	if err != nil {
		respondError(w, "List users handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// Me handles GET /users/me
// Returns the caller's own account.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	user, err := h.userService.Me(r.Context(), id)
	if err != nil {
		respondError(w, "Me handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Profile handles GET /users/{id}
// Returns any account by id.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid user ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	user, err := h.userService.Profile(r.Context(), id, userID)
	if err != nil {
		respondError(w, "Profile handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/me
// Patches the caller's own account.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, "Update user handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
// Removes an account. Admin only.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid user ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	user, err := h.userService.Delete(r.Context(), id, userID)
	if err != nil {
		respondError(w, "Delete user handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Follow handles POST /users/{id}/follow
// Toggles the follow relationship between the caller and the target.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	targetID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid user ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	user, err := h.followService.FollowUnfollow(r.Context(), id, targetID)
	if err != nil {
		respondError(w, "Follow handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Followers handles GET /users/{id}/followers
func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid user ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	followers, err := h.userService.Followers(r.Context(), id, userID)
	if err != nil {
		respondError(w, "Followers handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, followers)
}

// Following handles GET /users/{id}/following
func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid user ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	following, err := h.userService.Following(r.Context(), id, userID)
	if err != nil {
		respondError(w, "Following handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, following)
}

// Suggested handles GET /users/suggested
// Returns accounts the caller might want to follow.
func (h *UserHandler) Suggested(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	users, err := h.userService.Suggested(r.Context(), id)
	if err != nil {
		respondError(w, "Suggested handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// Posts handles GET /users/{id}/posts
// Returns a user's posts, newest first.
func (h *UserHandler) Posts(w http.ResponseWriter, r *http.Request) {
	userID, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteValidation(w, "Invalid user ID")
		return
	}
	id := middleware.IdentityFromContext(r.Context())

	posts, err := h.postService.UserPosts(r.Context(), id, userID)
	if err != nil {
		respondError(w, "User posts handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}
