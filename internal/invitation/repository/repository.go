// Package repository provides data access layer for team invitations.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/invitation/model"
)

// Repository defines the interface for invitation data access operations.
type Repository interface {
	// Create inserts a pending request. A second pending request for the
	// same team and receiver yields ErrRequestPending.
	Create(ctx context.Context, req *model.TeamRequest) error

	// GetForReceiver finds a request addressed to receiverID.
	GetForReceiver(ctx context.Context, requestID, receiverID string) (*model.TeamRequest, error)

	// HasPending reports whether a pending request exists for the pair.
	HasPending(ctx context.Context, teamID, receiverID string) (bool, error)

	// ListPendingForReceiver returns pending requests addressed to the user, newest first.
	ListPendingForReceiver(ctx context.Context, receiverID string) ([]model.TeamRequest, error)

	// ListPendingReceivers returns the users holding a pending request for the team.
	ListPendingReceivers(ctx context.Context, teamID string) ([]string, error)

	// Resolve moves a pending request to a terminal status. It returns false
	// when the request was no longer pending.
	Resolve(ctx context.Context, requestID string, status model.Status) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new invitation repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a pending request.
func (r *repository) Create(ctx context.Context, req *model.TeamRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if dberr.IsDuplicate(err) {
			return model.ErrRequestPending
		}
		r.logger.Errorw("Create database error", "team_id", req.TeamID, "receiver_id", req.ReceiverID, "error", err)
		return err
	}
	return nil
}

// GetForReceiver finds a request addressed to receiverID.
func (r *repository) GetForReceiver(ctx context.Context, requestID, receiverID string) (*model.TeamRequest, error) {
	var req model.TeamRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND receiver_id = ?", requestID, receiverID).
		First(&req).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, model.ErrRequestNotFound
		}
		r.logger.Errorw("GetForReceiver database error", "request_id", requestID, "error", err)
		return nil, err
	}
	return &req, nil
}

// HasPending reports whether a pending request exists for the pair.
func (r *repository) HasPending(ctx context.Context, teamID, receiverID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamRequest{}).
		Where("team_id = ? AND receiver_id = ? AND status = ?", teamID, receiverID, model.StatusPending).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("HasPending database error", "team_id", teamID, "receiver_id", receiverID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// ListPendingForReceiver returns pending requests addressed to the user.
func (r *repository) ListPendingForReceiver(ctx context.Context, receiverID string) ([]model.TeamRequest, error) {
	requests := []model.TeamRequest{}
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, model.StatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		r.logger.Errorw("ListPendingForReceiver database error", "receiver_id", receiverID, "error", err)
		return nil, err
	}
	return requests, nil
}

// ListPendingReceivers returns the receivers of the team's pending requests.
func (r *repository) ListPendingReceivers(ctx context.Context, teamID string) ([]string, error) {
	receivers := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.TeamRequest{}).
		Where("team_id = ? AND status = ?", teamID, model.StatusPending).
		Pluck("receiver_id", &receivers).Error
	if err != nil {
		r.logger.Errorw("ListPendingReceivers database error", "team_id", teamID, "error", err)
		return nil, err
	}
	return receivers, nil
}

// ListPendingReceivers returns the receivers of the team's pending requests.
func (r *repository) ListPendingReceivers(ctx context.Context, teamID string) ([]string, error) {
	receivers := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.TeamRequest{}).
		Where("team_id = ? AND status = ?", teamID, model.StatusPending).
		Pluck("receiver_id", &receivers).Error
	if err != nil {
		r.logger.Errorw("ListPendingReceivers database error", "team_id", teamID, "error", err)
		return nil, err
	}
	return receivers, nil
}

// Resolve moves a pending request to a terminal status.
func (r *repository) Resolve(ctx context.Context, requestID string, status model.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.TeamRequest{}).
		Where("id = ? AND status = ?", requestID, model.StatusPending).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("Resolve database error", "request_id", requestID, "status", status, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
