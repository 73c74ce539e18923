// Package servicetest provides an in-memory service.Store for tests.
package servicetest

import (
	"context"
	"sync"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/repository"
	"github.com/devconnect/backend/internal/service"
)

// InMemStore keeps users, profiles and posts in maps. It mirrors the
// repository's error contract: repository.ErrNotFound for missing
// records, repository.ErrDuplicate for a taken email.
type InMemStore struct {
	mu         sync.Mutex
	nextUserID int64
	nextPostID int64
	users      map[int64]*models.User
	profiles   map[int64]*models.Profile // keyed by owner user id
	posts      map[int64]*models.Post
}

var _ service.Store = (*InMemStore)(nil)

func NewInMemStore() *InMemStore {
	return &InMemStore{
		users:    map[int64]*models.User{},
		profiles: map[int64]*models.Profile{},
		posts:    map[int64]*models.Post{},
	}
}

func (s *InMemStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *InMemStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *InMemStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemStore) DeleteUserCascade(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, userID)
	delete(s.profiles, userID)
	for id, p := range s.posts {
		if p.UserID == userID {
			delete(s.posts, id)
		}
	}
	return nil
}

func (s *InMemStore) populateOwner(p *models.Profile) {
	if u, ok := s.users[p.UserID]; ok {
		p.Name = u.Name
		p.Avatar = u.Avatar
	}
}

func (s *InMemStore) UpsertProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		profile.ID = profile.UserID
	}
	cp := cloneProfile(profile)
	s.profiles[profile.UserID] = cp
	return nil
}

func (s *InMemStore) UpdateProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.profiles[profile.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := cloneProfile(profile)
	cp.ID = existing.ID
	s.profiles[profile.UserID] = cp
	return nil
}

func (s *InMemStore) FindProfileByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := cloneProfile(p)
	s.populateOwner(cp)
	return cp, nil
}

func (s *InMemStore) ListProfiles(_ context.Context) ([]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := []*models.Profile{}
	for _, p := range s.profiles {
		cp := cloneProfile(p)
		s.populateOwner(cp)
		profiles = append(profiles, cp)
	}
	return profiles, nil
}

func (s *InMemStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPostID++
	post.ID = s.nextPostID
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *InMemStore) ListPosts(_ context.Context) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := []*models.Post{}
	for id := s.nextPostID; id > 0; id-- {
		if p, ok := s.posts[id]; ok {
			posts = append(posts, clonePost(p))
		}
	}
	return posts, nil
}

func (s *InMemStore) FindPostByID(_ context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *InMemStore) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *InMemStore) UpdatePostLikes(_ context.Context, id int64, likes []models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Likes = append([]models.Like{}, likes...)
	return nil
}

func (s *InMemStore) UpdatePostComments(_ context.Context, id int64, comments []models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Comments = append([]models.Comment{}, comments...)
	return nil
}

func cloneProfile(p *models.Profile) *models.Profile {
	cp := *p
	cp.Skills = append([]string{}, p.Skills...)
	cp.Experience = append([]models.Experience{}, p.Experience...)
	cp.Education = append([]models.Education{}, p.Education...)
	return &cp
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Likes = append([]models.Like{}, p.Likes...)
	cp.Comments = append([]models.Comment{}, p.Comments...)
	return &cp
}
