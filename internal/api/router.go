package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sainikith07/DynoCollect/internal/uploader"
)

// NewRouter assembles the route tree and middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(h.logger))
	r.Use(metricsMiddleware)
	r.Use(loggingMiddleware(h.logger))

	r.Get("/healthz", h.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/submit-text", h.handleSubmitText)
	r.Post("/upload-audio", h.handleUpload(uploader.BucketAudio))
	r.Post("/upload-video", h.handleUpload(uploader.BucketVideo))
	r.Post("/upload-image", h.handleUpload(uploader.BucketImage))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Get("/user", h.handleCurrentUser)
	})

	return r
}
