package service

import (
	"context"
	"errors"
	"time"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/repository"
	"github.com/google/uuid"
)

// CreatePost stores a new post with a snapshot of the author's name and
// avatar.
func (s *Service) CreatePost(ctx context.Context, userID int64, text string) (*models.Post, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Infof("Post %d created by user %d", post.ID, userID)
	return post, nil
}

// Posts returns all posts, newest first.
func (s *Service) Posts(ctx context.Context) ([]*models.Post, error) {
	return s.store.ListPosts(ctx)
}

// Post returns a single post by id.
func (s *Service) Post(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only the post's author may delete it.
func (s *Service) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.Post(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotAuthorized
	}

	if err := s.store.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Infof("Post %d deleted by user %d", postID, userID)
	return nil
}

// Like adds the caller to a post's likes. Liking an already-liked post
// is a no-op, so a user appears at most once.
func (s *Service) Like(ctx context.Context, userID, postID int64) ([]models.Like, error) {
	post, err := s.Post(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return post.Likes, nil
		}
	}

	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)
	if err := s.store.UpdatePostLikes(ctx, postID, post.Likes); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the caller from a post's likes. Unliking a post the
// caller never liked is a no-op.
func (s *Service) Unlike(ctx context.Context, userID, postID int64) ([]models.Like, error) {
	post, err := s.Post(ctx, postID)
	if err != nil {
		return nil, err
	}

	kept := post.Likes[:0]
	for _, like := range post.Likes {
		if like.UserID != userID {
			kept = append(kept, like)
		}
	}
	post.Likes = kept

	if err := s.store.UpdatePostLikes(ctx, postID, post.Likes); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// AddComment prepends a comment carrying a snapshot of the caller's name
// and avatar, and returns the updated comment list.
func (s *Service) AddComment(ctx context.Context, userID, postID int64, text string) ([]models.Comment, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.Post(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:     uuid.NewString(),
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now().UTC(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := s.store.UpdatePostComments(ctx, postID, post.Comments); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// DeleteComment removes a comment. Only the comment's author may remove
// it.
func (s *Service) DeleteComment(ctx context.Context, userID, postID int64, commentID string) ([]models.Comment, error) {
	post, err := s.Post(ctx, postID)
	if err != nil {
		return nil, err
	}

	found := false
	kept := post.Comments[:0]
	for _, c := range post.Comments {
		if c.ID == commentID {
			if c.UserID != userID {
				return nil, ErrNotAuthorized
			}
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return nil, ErrCommentNotFound
	}
	post.Comments = kept

	if err := s.store.UpdatePostComments(ctx, postID, post.Comments); err != nil {
		return nil, err
	}
	return post.Comments, nil
}
