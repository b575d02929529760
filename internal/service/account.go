package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
	"recycletrack-api/pkg/uid"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong secret; the two cases are not distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AccountService handles registration and login, keeping the account
// directory and the leaderboard roster in step: the roster entry is
// created before the credential, so a registered account can never be
// observed without its profile.
type AccountService struct {
	mu    sync.Mutex
	repo  repository.AccountRepository
	board *LeaderboardService
}

// NewAccountService creates a new account service.
// Returns nil if any dependency is nil (all are required).
func NewAccountService(repo repository.AccountRepository, board *LeaderboardService) *AccountService {
	if repo == nil || board == nil {
		return nil
	}
	return &AccountService{repo: repo, board: board}
}

// Register creates a new account and its zeroed leaderboard profile.
// Username matching is case-sensitive; duplicates return
// repository.ErrAlreadyExists.
func (s *AccountService) Register(ctx context.Context, username, secret string) (string, error) {
	if username == "" || secret == "" {
		return "", ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return "", repository.ErrAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	userID := uid.New()

	// Roster first: once the credential lands, login + listUsers must
	// both succeed.
	if err := s.board.AddUser(ctx, userID, username); err != nil {
		return "", err
	}

	cred := model.Credential{
		Username:  username,
		Secret:    secret,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, cred); err != nil {
		log.Printf("[AccountService] Credential create failed after roster add for %s: %v", username, err)
		return "", err
	}

	return userID, nil
}

// Login checks the username and secret (exact match on both) and returns
// the user id, or ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, secret string) (string, error) {
	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if cred.Secret != secret {
		return "", ErrInvalidCredentials
	}
	return cred.UserID, nil
}
