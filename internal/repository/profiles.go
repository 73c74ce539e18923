package repository

import (
	"context"
	"fmt"

	"database/sql"

	"github.com/devconnect/backend/internal/models"
)

const profileColumns = `
	p.id, p.user_id, u.name, u.avatar, p.company, p.website, p.location,
	p.status, p.bio, p.github_username, p.skills, p.social, p.experience,
	p.education, p.created_at, p.updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	p := &models.Profile{}
	var skills, social, experience, education []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.Company, &p.Website,
		&p.Location, &p.Status, &p.Bio, &p.GithubUsername, &skills, &social,
		&experience, &education, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(skills, &p.Skills); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(social, &p.Social); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(experience, &p.Experience); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(education, &p.Education); err != nil {
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []models.Experience{}
	}
	if p.Education == nil {
		p.Education = []models.Education{}
	}
	return p, nil
}

// UpsertProfile creates the profile for its user, or replaces every
// stored field when one already exists. The profile's ID is filled in.
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	skills, err := marshalJSON(profile.Skills)
	if err != nil {
		return err
	}
	social, err := marshalJSON(profile.Social)
	if err != nil {
		return err
	}
	experience, err := marshalJSON(profile.Experience)
	if err != nil {
		return err
	}
	education, err := marshalJSON(profile.Education)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO connect.profiles
			(user_id, company, website, location, status, bio, github_username,
			 skills, social, experience, education, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	err = r.db.QueryRowContext(ctx, query, profile.UserID, profile.Company,
		profile.Website, profile.Location, profile.Status, profile.Bio,
		profile.GithubUsername, skills, social, experience, education,
		profile.CreatedAt, profile.UpdatedAt).
		Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// UpdateProfile rewrites the mutable fields of an existing profile.
func (r *Repository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	skills, err := marshalJSON(profile.Skills)
	if err != nil {
		return err
	}
	social, err := marshalJSON(profile.Social)
	if err != nil {
		return err
	}
	experience, err := marshalJSON(profile.Experience)
	if err != nil {
		return err
	}
	education, err := marshalJSON(profile.Education)
	if err != nil {
		return err
	}

	query := `
		UPDATE connect.profiles SET
			company = $2, website = $3, location = $4, status = $5, bio = $6,
			github_username = $7, skills = $8, social = $9, experience = $10,
			education = $11, updated_at = $12
		WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, profile.UserID, profile.Company,
		profile.Website, profile.Location, profile.Status, profile.Bio,
		profile.GithubUsername, skills, social, experience, education,
		profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindProfileByUserID retrieves a profile by its owner, with the owner's
// name and avatar populated.
func (r *Repository) FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM connect.profiles p
		JOIN connect.users u ON u.id = p.user_id
		WHERE p.user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// ListProfiles retrieves all profiles with owner name and avatar populated.
func (r *Repository) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM connect.profiles p
		JOIN connect.users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}
