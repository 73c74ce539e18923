package handler

import (
	"github.com/devconnect/backend/internal/config"
	"github.com/devconnect/backend/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter mounts all API routes. Public routes live on the root
// router; everything on the auth subrouter requires a valid token.
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	}

	// Public routes
	r.HandleFunc("/api/users", h.Register).Methods("POST")
	r.HandleFunc("/api/auth", h.Login).Methods("POST")
	r.HandleFunc("/api/profile", h.Profiles).Methods("GET")
	r.HandleFunc("/api/profile/user/{user_id}", h.ProfileByUserID).Methods("GET")
	r.HandleFunc("/api/profile/github/{username}", h.GithubRepos).Methods("GET")
	r.HandleFunc("/api/post", h.Posts).Methods("GET")
	r.HandleFunc("/api/post/{id:[0-9]+}", h.PostByID).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/api/auth", h.CurrentUser).Methods("GET")
	authRouter.HandleFunc("/api/profile/me", h.MyProfile).Methods("GET")
	authRouter.HandleFunc("/api/profile", h.UpsertProfile).Methods("POST")
	authRouter.HandleFunc("/api/profile", h.DeleteAccount).Methods("DELETE")
	authRouter.HandleFunc("/api/profile/experience", h.AddExperience).Methods("PUT")
	authRouter.HandleFunc("/api/profile/experience/{exp_id}", h.RemoveExperience).Methods("DELETE")
	authRouter.HandleFunc("/api/profile/education", h.AddEducation).Methods("PUT")
	authRouter.HandleFunc("/api/profile/education/{edu_id}", h.RemoveEducation).Methods("DELETE")
	authRouter.HandleFunc("/api/post", h.CreatePost).Methods("POST")
	authRouter.HandleFunc("/api/post/{id:[0-9]+}", h.DeletePost).Methods("DELETE")
	authRouter.HandleFunc("/api/post/like/{id}", h.LikePost).Methods("PUT")
	authRouter.HandleFunc("/api/post/unlike/{id}", h.UnlikePost).Methods("PUT")
	authRouter.HandleFunc("/api/post/comment/{id}", h.AddComment).Methods("POST")
	authRouter.HandleFunc("/api/post/comment/{id}/{comment_id}", h.DeleteComment).Methods("DELETE")

	return r
}
