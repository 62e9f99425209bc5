// Package service provides business logic layer for user module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/user/model"
	"github.com/festy23/street_sports/internal/user/repository"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// GetMe returns the caller's own record.
	GetMe(ctx context.Context, userID string) (*model.ProfileResponse, error)

	// UpdateProfile edits the caller's profile fields.
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.ProfileResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// GetMe returns the caller's own record.
func (s *service) GetMe(ctx context.Context, userID string) (*model.ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.ProfileResponse{User: *user}, nil
}

// UpdateProfile edits the caller's profile fields.
func (s *service) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.ProfileResponse, error) {
	updates := map[string]any{}
	if req.Age != nil {
		if *req.Age < 5 || *req.Age > 120 {
			return nil, model.ErrInvalidAge
		}
		updates["age"] = *req.Age
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.FavoriteSport != nil {
		updates["favorite_sport"] = *req.FavoriteSport
	}
	if req.Role != nil {
		switch *req.Role {
		case model.RolePlayer, model.RoleOrganizer, model.RoleViewer:
			updates["role"] = *req.Role
		default:
			return nil, model.ErrInvalidRole
		}
	}

	user, err := s.repo.UpdateProfile(ctx, userID, updates)
	if err != nil {
		s.logger.Debugw("UpdateProfile failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Infow("profile updated", "user_id", userID, "fields", len(updates))
	return &model.ProfileResponse{User: *user}, nil
}
