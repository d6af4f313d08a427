package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/studydock/studydock-go/internal/model"
	"github.com/studydock/studydock-go/internal/repository"
)

const leaderboardLimit = 50

type UserService struct {
	repo  *repository.UserRepo
	cache *CacheService
}

func NewUserService(repo *repository.UserRepo, cache *CacheService) *UserService {
	return &UserService{repo: repo, cache: cache}
}

// Sync upserts the caller's identity-provider profile. Invoked once per
// authenticated request, before any engine operation that needs the user
// row to exist.
func (s *UserService) Sync(ctx context.Context, id model.Identity) error {
	return s.repo.Sync(ctx, id)
}

// Lookup returns a user's profile and aggregates.
func (s *UserService) Lookup(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Leaderboard returns the top users by reputation, cache-aside.
func (s *UserService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.cache != nil {
		if data, err := s.cache.GetLeaderboard(ctx); err != nil {
			log.Printf("cache: get leaderboard error: %v", err)
		} else if data != nil {
			var entries []model.LeaderboardEntry
			if err := json.Unmarshal(data, &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.repo.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLeaderboard(ctx, entries); err != nil {
			log.Printf("cache: set leaderboard error: %v", err)
		}
	}
	return entries, nil
}

// GetStats returns aggregate platform statistics.
func (s *UserService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.repo.GetStats(ctx)
}
