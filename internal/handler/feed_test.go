package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"chirpnet/internal/auth"
	"chirpnet/internal/service"
	"chirpnet/internal/transport/http/middleware"
)

func feedRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	id := auth.Identity{
		Authenticated: true,
		UserID:        bson.NewObjectID().Hex(),
		Role:          auth.RoleBasic,
	}
	return req.WithContext(context.WithValue(req.Context(), middleware.IdentityKey, id))
}

// A request without a feed type gets the same empty result as any
// other unrecognized type, not a default feed.
func TestFeedHandler_MissingType_EmptyList(t *testing.T) {
	h := NewFeedHandler(service.NewFeedService(nil, nil))

	for _, target := range []string{"/feed", "/feed?type=", "/feed?type=trending"} {
		rec := httptest.NewRecorder()
		h.Get(rec, feedRequest(t, target))

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusOK)
			continue
		}
		var posts []json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
			t.Errorf("%s: invalid response body: %v", target, err)
			continue
		}
		if len(posts) != 0 {
			t.Errorf("%s: got %d posts, want 0", target, len(posts))
		}
	}
}
