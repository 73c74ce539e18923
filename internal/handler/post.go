package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/devconnect/backend/internal/service"
	"github.com/gorilla/mux"
)

type postRequest struct {
	Text string `json:"text"`
}

func (req *postRequest) validate() []string {
	if strings.TrimSpace(req.Text) == "" {
		return []string{"Text is required"}
	}
	return nil
}

func postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// CreatePost stores a new post authored by the caller
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	post, err := h.svc.CreatePost(r.Context(), userID, req.Text)
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Posts lists all posts, newest first
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.Posts(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// PostByID returns a single post
func (h *Handler) PostByID(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.svc.Post(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// DeletePost removes a post owned by the caller
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := postID(r)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}

	err = h.svc.DeletePost(r.Context(), userID, id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeErrors(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrNotAuthorized):
		writeErrors(w, http.StatusUnauthorized, "User not authorized")
	case err != nil:
		h.serverError(w, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"msg": "Post removed"})
	}
}

// LikePost adds the caller's like to a post
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := postID(r)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}

	likes, err := h.svc.Like(r.Context(), userID, id)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// UnlikePost removes the caller's like from a post
func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := postID(r)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}

	likes, err := h.svc.Unlike(r.Context(), userID, id)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

// AddComment appends the caller's comment to a post
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := postID(r)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	comments, err := h.svc.AddComment(r.Context(), userID, id, req.Text)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// DeleteComment removes the caller's own comment from a post
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := postID(r)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Post not found")
		return
	}

	comments, err := h.svc.DeleteComment(r.Context(), userID, id, mux.Vars(r)["comment_id"])
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeErrors(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, service.ErrCommentNotFound):
		writeErrors(w, http.StatusNotFound, "Comment does not exist")
	case errors.Is(err, service.ErrNotAuthorized):
		writeErrors(w, http.StatusUnauthorized, "User not authorized")
	case err != nil:
		h.serverError(w, err)
	default:
		writeJSON(w, http.StatusOK, comments)
	}
}
