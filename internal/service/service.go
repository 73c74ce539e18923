package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/devconnect/backend/internal/config"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/repository"
	"github.com/devconnect/backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Store is the persistence surface the service depends on. It is
// implemented by *repository.Repository.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	DeleteUserCascade(ctx context.Context, userID int64) error

	UpsertProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	FindProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]*models.Profile, error)

	CreatePost(ctx context.Context, post *models.Post) error
	ListPosts(ctx context.Context) ([]*models.Post, error)
	FindPostByID(ctx context.Context, id int64) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	UpdatePostLikes(ctx context.Context, id int64, likes []models.Like) error
	UpdatePostComments(ctx context.Context, id int64, comments []models.Comment) error
}

// Mailer sends account emails. A nil Mailer disables them.
type Mailer interface {
	SendWelcome(to, name string) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	mail   Mailer
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mail Mailer) *Service {
	return &Service{store: store, log: log, config: cfg, mail: mail}
}

func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Register creates a new user with a hashed password and a gravatar
// avatar, and returns a signed token. Returns ErrEmailTaken when the
// email is already registered.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Avatar:       utils.GravatarURL(email),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	if s.mail != nil {
		go func() { _ = s.mail.SendWelcome(user.Email, user.Name) }()
	}

	s.log.Infof("User registered: %s", user.Email)
	return s.issueToken(user.ID)
}

// Login authenticates a user and returns a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	s.log.Infof("User logged in: %s", user.Email)
	return s.issueToken(user.ID)
}

// CurrentUser returns the user record for an authenticated caller.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the caller's posts, profile and user record as
// one atomic cascade.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.store.DeleteUserCascade(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Infof("User deleted: %d", userID)
	return nil
}
