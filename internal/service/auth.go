package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/leopar/marketplace/internal/events"
	"github.com/leopar/marketplace/internal/hash"
	"github.com/leopar/marketplace/internal/logging"
	"github.com/leopar/marketplace/internal/models"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/session"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Sessions *session.Manager
	Producer *events.Producer
}

type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a user with isAdmin always false and opens a session
// for it. Admin accounts are promoted out-of-band; no endpoint does it.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: pwHash,
		IsAdmin:      false,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("register_failed", "reason", "duplicate email")
			return nil, repo.ErrDuplicateEmail
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	token, err := s.Sessions.Create(ctx, user.ID, user.IsAdmin)
	if err != nil {
		l.Error("register_failed", "reason", "session create", "error", err)
		return nil, err
	}

	event := map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}
	if err := s.Producer.PublishEvent(ctx, events.UserTopic, fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("user_registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the credentials and opens a session snapshotting the
// user's admin bit. An unknown email and a wrong password produce the
// same ErrInvalidCredentials so callers cannot probe account existence.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "invalid credentials")
			return nil, repo.ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid credentials")
		return nil, repo.ErrInvalidCredentials
	}

	token, err := s.Sessions.Create(ctx, user.ID, user.IsAdmin)
	if err != nil {
		l.Error("login_failed", "reason", "session create", "error", err)
		return nil, err
	}

	event := map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	}
	if err := s.Producer.PublishEvent(ctx, events.UserTopic, fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Logout destroys the session. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")
	if err := s.Sessions.Destroy(ctx, token); err != nil {
		l.Error("logout_failed", "error", err)
		return err
	}
	l.Info("logout_successful")
	return nil
}
