package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/bloghub/blog-management/internal/auth"
	"github.com/bloghub/blog-management/internal/post"
	"github.com/bloghub/blog-management/internal/transport/middleware"
)

// RegisterAllRoutes wires the HTTP surface: public auth and read endpoints,
// and permission-gated post mutations behind the access-token middleware.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, postHandler *post.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if postHandler != nil {
			r.Route("/posts", func(pr chi.Router) {
				// Reads are public
				pr.Get("/", postHandler.GetAllPosts)
				pr.Get("/{id}", postHandler.GetPost)

				if authHandler != nil {
					pr.Group(func(mr chi.Router) {
						mr.Use(authHandler.Authenticator(auth.PermissionCreatePosts))
						mr.Post("/", postHandler.CreatePost)
					})

					pr.Group(func(mr chi.Router) {
						mr.Use(authHandler.Authenticator(auth.PermissionEditPosts))
						mr.Put("/{id}", postHandler.UpdatePost)
					})

					pr.Group(func(mr chi.Router) {
						mr.Use(authHandler.Authenticator(auth.PermissionDeletePosts))
						mr.Delete("/{id}", postHandler.DeletePost)
					})
				}
			})
		}
	})
}
