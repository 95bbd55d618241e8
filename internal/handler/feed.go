package handler

import (
	"net/http"

	"chirpnet/internal/httputil"
	"chirpnet/internal/service"
	"chirpnet/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// Get handles GET /feed?type=forYou|following|posts|likes|saved
// Resolves the requested feed for the caller. Anything outside that
// set, a missing type included, returns an empty list.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())

	feedType := service.FeedType(r.URL.Query().Get("type"))

	posts, err := h.feedService.Posts(r.Context(), id, feedType)
	if err != nil {
		respondError(w, "Feed handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}
