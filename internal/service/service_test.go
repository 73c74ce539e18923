package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/devconnect/backend/internal/config"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/service"
	"github.com/devconnect/backend/internal/service/servicetest"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func newTestService(t *testing.T) (*service.Service, *servicetest.InMemStore) {
	t.Helper()
	store := servicetest.NewInMemStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "testsecret"}
	return service.NewService(store, logger, cfg, nil), store
}

func registerUser(t *testing.T, svc *service.Service, store *servicetest.InMemStore, email string) int64 {
	t.Helper()
	if _, err := svc.Register(context.Background(), "Test User", email, "secret1"); err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	user, err := store.FindUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("FindUserByEmail(%s): %v", email, err)
	}
	return user.ID
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "A", "a@x.com", "secret1")
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("second register: got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterTokenEmbedsUserID(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := store.FindUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user.Avatar == "" {
		t.Error("registered user has no avatar")
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in the clear")
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte("testsecret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "1" {
		t.Errorf("token subject = %q, want %q", claims.Subject, "1")
	}
	if user.ID != 1 {
		t.Errorf("user id = %d, want 1", user.ID)
	}
}

func TestLoginCredentialErrorsAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrongpw")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret1")

	if !errors.Is(wrongPassword, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestUpsertProfileIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	in := service.ProfileInput{
		Status: "Developer",
		Skills: " Go, SQL , ,HTTP",
	}
	first, err := svc.UpsertProfile(ctx, userID, in)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := svc.UpsertProfile(ctx, userID, in)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	wantSkills := []string{"Go", "SQL", "HTTP"}
	for i, got := range [][]string{first.Skills, second.Skills} {
		if len(got) != len(wantSkills) {
			t.Fatalf("upsert %d: skills = %v, want %v", i, got, wantSkills)
		}
		for j := range wantSkills {
			if got[j] != wantSkills[j] {
				t.Fatalf("upsert %d: skills = %v, want %v", i, got, wantSkills)
			}
		}
	}
	if first.ID != second.ID {
		t.Errorf("upsert created a second profile: ids %d and %d", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("creation date changed on update")
	}

	all, err := svc.Profiles(ctx)
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("profiles = %d, want 1", len(all))
	}
}

func TestUpsertClearsExperienceWhenOmitted(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	if _, err := svc.UpsertProfile(ctx, userID, service.ProfileInput{Status: "Dev", Skills: "Go"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.AddExperience(ctx, userID, models.Experience{Title: "Engineer", Company: "Acme", From: "2020-01-01"}); err != nil {
		t.Fatalf("add experience: %v", err)
	}

	updated, err := svc.UpsertProfile(ctx, userID, service.ProfileInput{Status: "Senior Dev", Skills: "Go"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if len(updated.Experience) != 0 {
		t.Fatalf("experience after upsert omitting it: %d entries, want 0", len(updated.Experience))
	}

	stored, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(stored.Experience) != 0 {
		t.Fatalf("stored experience after upsert omitting it: %d entries, want 0", len(stored.Experience))
	}
}

func TestUpsertReplacesProvidedEntryLists(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	if _, err := svc.UpsertProfile(ctx, userID, service.ProfileInput{Status: "Dev", Skills: "Go"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.AddExperience(ctx, userID, models.Experience{Title: "Old", Company: "Acme", From: "2018"}); err != nil {
		t.Fatalf("add experience: %v", err)
	}

	updated, err := svc.UpsertProfile(ctx, userID, service.ProfileInput{
		Status: "Dev",
		Skills: "Go",
		Experience: []models.Experience{
			{Title: "New", Company: "Initech", From: "2022"},
		},
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if len(updated.Experience) != 1 || updated.Experience[0].Title != "New" {
		t.Fatalf("experience = %v, want the provided list only", updated.Experience)
	}
	if updated.Experience[0].ID == "" {
		t.Errorf("provided entry did not get an id")
	}
}

func TestExperiencePrependedNewestFirst(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	if _, err := svc.UpsertProfile(ctx, userID, service.ProfileInput{Status: "Dev", Skills: "Go"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := svc.AddExperience(ctx, userID, models.Experience{Title: "First", Company: "Acme", From: "2018"}); err != nil {
		t.Fatalf("add first: %v", err)
	}
	profile, err := svc.AddExperience(ctx, userID, models.Experience{Title: "Second", Company: "Acme", From: "2021"})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	if len(profile.Experience) != 2 || profile.Experience[0].Title != "Second" {
		t.Fatalf("experience order = %v, want newest first", profile.Experience)
	}
	if profile.Experience[0].ID == "" || profile.Experience[0].ID == profile.Experience[1].ID {
		t.Errorf("experience entries need distinct ids: %v", profile.Experience)
	}

	removed, err := svc.RemoveExperience(ctx, userID, profile.Experience[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(removed.Experience) != 1 || removed.Experience[0].Title != "First" {
		t.Fatalf("after remove: %v", removed.Experience)
	}
}

func TestExperienceWithoutProfile(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	_, err := svc.AddExperience(ctx, userID, models.Experience{Title: "X", Company: "Y", From: "2020"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	post, err := svc.CreatePost(ctx, userID, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if _, err := svc.Like(ctx, userID, post.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	likes, err := svc.Like(ctx, userID, post.ID)
	if err != nil {
		t.Fatalf("second like: %v", err)
	}
	if len(likes) != 1 {
		t.Fatalf("likes = %d, want 1", len(likes))
	}

	likes, err = svc.Unlike(ctx, userID, post.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("likes after unlike = %d, want 0", len(likes))
	}
	if _, err := svc.Unlike(ctx, userID, post.ID); err != nil {
		t.Fatalf("repeated unlike: %v", err)
	}
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	owner := registerUser(t, svc, store, "a@x.com")
	other := registerUser(t, svc, store, "b@x.com")

	post, err := svc.CreatePost(ctx, owner, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.DeletePost(ctx, other, post.ID); !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("delete by non-owner: got %v, want ErrNotAuthorized", err)
	}
	if err := svc.DeletePost(ctx, owner, post.ID); err != nil {
		t.Fatalf("delete by owner: %v", err)
	}
	if _, err := svc.Post(ctx, post.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("post still readable after delete: %v", err)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	owner := registerUser(t, svc, store, "a@x.com")
	commenter := registerUser(t, svc, store, "b@x.com")

	post, err := svc.CreatePost(ctx, owner, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	comments, err := svc.AddComment(ctx, commenter, post.ID, "nice post")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	commentID := comments[0].ID

	if _, err := svc.DeleteComment(ctx, owner, post.ID, commentID); !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("delete by post owner: got %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.DeleteComment(ctx, commenter, post.ID, "no-such-id"); !errors.Is(err, service.ErrCommentNotFound) {
		t.Fatalf("delete unknown comment: got %v, want ErrCommentNotFound", err)
	}
	remaining, err := svc.DeleteComment(ctx, commenter, post.ID, commentID)
	if err != nil {
		t.Fatalf("delete by author: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("comments after delete = %d, want 0", len(remaining))
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := registerUser(t, svc, store, "a@x.com")

	if _, err := svc.UpsertProfile(ctx, userID, service.ProfileInput{Status: "Dev", Skills: "Go"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.CreatePost(ctx, userID, "hello"); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.DeleteAccount(ctx, userID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := svc.Profile(ctx, userID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("profile survived cascade: %v", err)
	}
	posts, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("posts survived cascade: %d", len(posts))
	}
	if _, err := svc.Login(ctx, "a@x.com", "secret1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("login after delete: got %v", err)
	}
}
