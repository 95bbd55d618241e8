package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chirpnet/internal/auth"
	"chirpnet/internal/handler"
	"chirpnet/internal/httputil"
	authmw "chirpnet/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PostHandler         *handler.PostHandler
	CommentHandler      *handler.CommentHandler
	FeedHandler         *handler.FeedHandler
	NotificationHandler *handler.NotificationHandler
	Tokens              *auth.TokenManager
}

// NewRouter creates and configures a new Chi router with all route groups.
// Every route runs behind the Identity middleware; the middleware never
// rejects, the services decide what an unauthenticated caller may do.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(authmw.Identity(cfg.Tokens))

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/status", cfg.AuthHandler.Status)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", cfg.UserHandler.List)
		r.Get("/me", cfg.UserHandler.Me)
		r.Put("/me", cfg.UserHandler.Update)
		r.Get("/suggested", cfg.UserHandler.Suggested)
		r.Get("/{id}", cfg.UserHandler.Profile)
		r.Delete("/{id}", cfg.UserHandler.Delete)
		r.Post("/{id}/follow", cfg.UserHandler.Follow)
		r.Get("/{id}/followers", cfg.UserHandler.Followers)
		r.Get("/{id}/following", cfg.UserHandler.Following)
		r.Get("/{id}/posts", cfg.UserHandler.Posts)
	})

	r.Get("/feed", cfg.FeedHandler.Get)

	r.Route("/posts", func(r chi.Router) {
		r.Post("/", cfg.PostHandler.Create)
		r.Get("/{id}", cfg.PostHandler.GetByID)
		r.Put("/{id}", cfg.PostHandler.Update)
		r.Delete("/{id}", cfg.PostHandler.Delete)
		r.Post("/{id}/like", cfg.PostHandler.Like)
		r.Post("/{id}/save", cfg.PostHandler.Save)
		r.Get("/{id}/likes", cfg.PostHandler.Likes)
		r.Post("/{id}/comments", cfg.CommentHandler.Create)
		r.Get("/{id}/comments", cfg.CommentHandler.ListForPost)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{id}", cfg.CommentHandler.GetByID)
		r.Put("/{id}", cfg.CommentHandler.Update)
		r.Delete("/{id}", cfg.CommentHandler.Delete)
		r.Post("/{id}/replies", cfg.CommentHandler.CreateReply)
		r.Get("/{id}/replies", cfg.CommentHandler.ListReplies)
	})

	r.Route("/replies", func(r chi.Router) {
		r.Put("/{id}", cfg.CommentHandler.UpdateReply)
		r.Delete("/{id}", cfg.CommentHandler.DeleteReply)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", cfg.NotificationHandler.List)
		r.Delete("/", cfg.NotificationHandler.DeleteAll)
	})

	return r
}
