package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/repository"
	"github.com/google/uuid"
)

// ProfileInput carries the fields accepted by the profile upsert.
// Skills arrives as comma-separated text. Experience and Education
// replace the stored entries wholesale; omitting them clears them.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Social         models.SocialLinks
	Experience     []models.Experience
	Education      []models.Education
}

func splitSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// UpsertProfile creates the caller's profile or replaces its fields.
// Calling it twice with the same input yields the same profile.
func (s *Service) UpsertProfile(ctx context.Context, userID int64, in ProfileInput) (*models.Profile, error) {
	now := time.Now().UTC()
	profile := &models.Profile{
		UserID:         userID,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         splitSkills(in.Skills),
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social:         in.Social,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	existing, err := s.store.FindProfileByUserID(ctx, userID)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, err
	}

	// An upsert replaces every field, entry lists included.
	profile.Experience = in.Experience
	if profile.Experience == nil {
		profile.Experience = []models.Experience{}
	}
	for i := range profile.Experience {
		if profile.Experience[i].ID == "" {
			profile.Experience[i].ID = uuid.NewString()
		}
	}
	profile.Education = in.Education
	if profile.Education == nil {
		profile.Education = []models.Education{}
	}
	for i := range profile.Education {
		if profile.Education[i].ID == "" {
			profile.Education[i].ID = uuid.NewString()
		}
	}

	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Infof("Profile upserted for user %d", userID)
	return profile, nil
}

// Profile returns the profile owned by the given user.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := s.store.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Profiles returns all profiles.
func (s *Service) Profiles(ctx context.Context) ([]*models.Profile, error) {
	return s.store.ListProfiles(ctx)
}

// AddExperience prepends a work-history entry to the caller's profile.
func (s *Service) AddExperience(ctx context.Context, userID int64, exp models.Experience) (*models.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ID = uuid.NewString()
	profile.Experience = append([]models.Experience{exp}, profile.Experience...)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience drops the entry with the given id from the caller's
// profile. Removing an unknown id is a no-op.
func (s *Service) RemoveExperience(ctx context.Context, userID int64, expID string) (*models.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Experience[:0]
	for _, exp := range profile.Experience {
		if exp.ID != expID {
			kept = append(kept, exp)
		}
	}
	profile.Experience = kept
	profile.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Service) AddEducation(ctx context.Context, userID int64, edu models.Education) (*models.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ID = uuid.NewString()
	profile.Education = append([]models.Education{edu}, profile.Education...)
	profile.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation drops the entry with the given id from the caller's
// profile. Removing an unknown id is a no-op.
func (s *Service) RemoveEducation(ctx context.Context, userID int64, eduID string) (*models.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Education[:0]
	for _, edu := range profile.Education {
		if edu.ID != eduID {
			kept = append(kept, edu)
		}
	}
	profile.Education = kept
	profile.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
