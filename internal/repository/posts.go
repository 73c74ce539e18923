package repository

import (
	"context"
	"fmt"

	"database/sql"

	"github.com/devconnect/backend/internal/models"
)

const postColumns = `id, user_id, body, author_name, author_avatar, likes, comments, created_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var likes, comments []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &likes, &comments, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(likes, &p.Likes); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(comments, &p.Comments); err != nil {
		return nil, err
	}
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return p, nil
}

// CreatePost inserts a new post. The post's ID is filled in.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	likes, err := marshalJSON(post.Likes)
	if err != nil {
		return err
	}
	comments, err := marshalJSON(post.Comments)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO connect.posts (user_id, body, author_name, author_avatar, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err = r.db.QueryRowContext(ctx, query, post.UserID, post.Text, post.Name,
		post.Avatar, likes, comments, post.CreatedAt).
		Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// ListPosts retrieves all posts, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM connect.posts
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// FindPostByID retrieves a single post
func (r *Repository) FindPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM connect.posts
		WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post by id
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM connect.posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
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

// UpdatePostLikes replaces the likes list of a post.
func (r *Repository) UpdatePostLikes(ctx context.Context, id int64, likes []models.Like) error {
	raw, err := marshalJSON(likes)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE connect.posts SET likes = $2 WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("failed to update likes: %w", err)
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

// UpdatePostComments replaces the comments list of a post.
func (r *Repository) UpdatePostComments(ctx context.Context, id int64, comments []models.Comment) error {
	raw, err := marshalJSON(comments)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE connect.posts SET comments = $2 WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("failed to update comments: %w", err)
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
