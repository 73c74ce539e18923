package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/devconnect/backend/internal/integrations/github"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/service"
	"github.com/gorilla/mux"
)

type profileRequest struct {
	Company        string              `json:"company"`
	Website        string              `json:"website"`
	Location       string              `json:"location"`
	Status         string              `json:"status"`
	Skills         string              `json:"skills"`
	Bio            string              `json:"bio"`
	GithubUsername string              `json:"githubusername"`
	Experience     []models.Experience `json:"experience"`
	Education      []models.Education  `json:"education"`
	Youtube        string              `json:"youtube"`
	Twitter        string              `json:"twitter"`
	Facebook       string              `json:"facebook"`
	Linkedin       string              `json:"linkedin"`
	Instagram      string              `json:"instagram"`
}

func (req *profileRequest) validate() []string {
	var msgs []string
	if strings.TrimSpace(req.Status) == "" {
		msgs = append(msgs, "Status is required")
	}
	if strings.TrimSpace(req.Skills) == "" {
		msgs = append(msgs, "Skills are required")
	}
	return msgs
}

// UpsertProfile creates or replaces the caller's profile
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	profile, err := h.svc.UpsertProfile(r.Context(), userID, service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
		Experience: req.Experience,
		Education:  req.Education,
	})
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// MyProfile returns the caller's profile
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.Profile(r.Context(), userID)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "There is no profile for this user")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Profiles lists all profiles
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.Profiles(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// ProfileByUserID returns the profile owned by the user in the path. A
// malformed id behaves like a missing profile, matching the lookup-by-id
// contract.
func (h *Handler) ProfileByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}

	profile, err := h.svc.Profile(r.Context(), userID)
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// DeleteAccount cascade-deletes the caller's posts, profile and user
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeErrors(w, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "User deleted"})
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (req *experienceRequest) validate() []string {
	var msgs []string
	if strings.TrimSpace(req.Title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(req.Company) == "" {
		msgs = append(msgs, "Company is required")
	}
	if strings.TrimSpace(req.From) == "" {
		msgs = append(msgs, "From date is required")
	}
	return msgs
}

// AddExperience prepends a work-history entry to the caller's profile
func (h *Handler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req experienceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	profile, err := h.svc.AddExperience(r.Context(), userID, models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// RemoveExperience drops a work-history entry from the caller's profile
func (h *Handler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.RemoveExperience(r.Context(), userID, mux.Vars(r)["exp_id"])
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (req *educationRequest) validate() []string {
	var msgs []string
	if strings.TrimSpace(req.School) == "" {
		msgs = append(msgs, "School is required")
	}
	if strings.TrimSpace(req.Degree) == "" {
		msgs = append(msgs, "Degree is required")
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		msgs = append(msgs, "Field of study is required")
	}
	if strings.TrimSpace(req.From) == "" {
		msgs = append(msgs, "From date is required")
	}
	return msgs
}

// AddEducation prepends an education entry to the caller's profile
func (h *Handler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req educationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := req.validate(); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	profile, err := h.svc.AddEducation(r.Context(), userID, models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// RemoveEducation drops an education entry from the caller's profile
func (h *Handler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.RemoveEducation(r.Context(), userID, mux.Vars(r)["edu_id"])
	if errors.Is(err, service.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GithubRepos proxies the repository listing for a GitHub username
func (h *Handler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := h.gh.ReposByUsername(r.Context(), mux.Vars(r)["username"])
	if errors.Is(err, github.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, "No Github profile found")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}
