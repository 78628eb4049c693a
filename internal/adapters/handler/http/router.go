package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Video        *VideoHandler
	Comment      *CommentHandler
	Like         *LikeHandler
	Subscription *SubscriptionHandler
	Tweet        *TweetHandler
	Playlist     *PlaylistHandler
	Dashboard    *DashboardHandler
}

func NewHandler(h Handlers, gate *AuthGate) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh-token", h.Auth.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Get("/me", h.User.GetMe)
				r.Patch("/me", h.User.UpdateMe)
				r.Patch("/me/avatar", h.User.UpdateAvatar)
				r.Patch("/me/cover", h.User.UpdateCoverImage)
				r.Get("/history", h.User.WatchHistory)
			})
		})

		r.Route("/channels/{handle}", func(r chi.Router) {
			r.With(gate.Optional).Get("/", h.User.GetChannel)
			r.Get("/tweets", h.Tweet.ListByChannel)
			r.Get("/subscribers", h.Subscription.Subscribers)
			r.With(gate.Require).Post("/subscription", h.Subscription.Toggle)
		})

		r.With(gate.Require).Get("/subscriptions", h.Subscription.Subscriptions)

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.Video.List)
			r.With(gate.Require).Post("/", h.Video.Publish)

			r.Route("/{id}", func(r chi.Router) {
				r.With(gate.Optional).Get("/", h.Video.Get)
				r.Get("/comments", h.Comment.ListByVideo)

				r.Group(func(r chi.Router) {
					r.Use(gate.Require)
					r.Patch("/", h.Video.Update)
					r.Delete("/", h.Video.Delete)
					r.Post("/publish", h.Video.TogglePublish)
					r.Post("/comments", h.Comment.Add)
				})
			})
		})

		r.Route("/comments/{id}", func(r chi.Router) {
			r.Use(gate.Require)
			r.Patch("/", h.Comment.Edit)
			r.Delete("/", h.Comment.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(gate.Require)
			r.Post("/video/{id}", h.Like.ToggleVideo)
			r.Post("/comment/{id}", h.Like.ToggleComment)
			r.Post("/tweet/{id}", h.Like.ToggleTweet)
			r.Get("/videos", h.Like.LikedVideos)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Use(gate.Require)
			r.Post("/", h.Tweet.Create)
			r.Patch("/{id}", h.Tweet.Edit)
			r.Delete("/{id}", h.Tweet.Delete)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Get("/{id}", h.Playlist.Get)

			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/", h.Playlist.Create)
				r.Patch("/{id}", h.Playlist.Update)
				r.Delete("/{id}", h.Playlist.Delete)
				r.Post("/{id}/videos/{videoID}", h.Playlist.AddVideo)
				r.Delete("/{id}/videos/{videoID}", h.Playlist.RemoveVideo)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(gate.Require)
			r.Get("/stats", h.Dashboard.Stats)
			r.Get("/videos", h.Dashboard.Videos)
		})
	})

	return r
}
