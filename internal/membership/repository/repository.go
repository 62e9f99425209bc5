// Package repository provides data access layer for event rosters.
//
// Inserts are insert-if-absent and removals delete a single row, so two
// requests racing on the same roster never lose each other's update.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/membership/model"
)

// Repository defines the interface for roster data access operations.
type Repository interface {
	// IsAudienceMember reports whether the user is in the event audience.
	IsAudienceMember(ctx context.Context, eventID, userID string) (bool, error)

	// AddAudienceMember inserts the user into the audience. It returns false
	// when the user was already there.
	AddAudienceMember(ctx context.Context, eventID, userID string) (bool, error)

	// RemoveAudienceMember deletes the user from the audience. It returns
	// false when the user was not there.
	RemoveAudienceMember(ctx context.Context, eventID, userID string) (bool, error)

	// ListAudience returns audience user ids in join order.
	ListAudience(ctx context.Context, eventID string) ([]string, error)

	// GetParticipant returns the pool entry of the user, or nil.
	GetParticipant(ctx context.Context, eventID, userID string) (*model.Participant, error)

	// AddParticipant inserts the user into the pending pool.
	AddParticipant(ctx context.Context, eventID, userID string) (bool, error)

	// ApproveParticipant marks a pool entry approved.
	ApproveParticipant(ctx context.Context, eventID, userID string) (bool, error)

	// RemoveParticipant deletes the user from the pool.
	RemoveParticipant(ctx context.Context, eventID, userID string) (bool, error)

	// ListParticipants returns pool user ids in application order. With
	// pendingOnly set, approved entries are skipped.
	ListParticipants(ctx context.Context, eventID string, pendingOnly bool) ([]string, error)

	// FindTeamOfUser returns the roster entry of the user in the event, or nil.
	FindTeamOfUser(ctx context.Context, eventID, userID string) (*model.TeamMember, error)

	// AddTeamMember inserts the user into a team roster. It returns false
	// when the user already is on a team of the event.
	AddTeamMember(ctx context.Context, eventID, teamID, userID string) (bool, error)

	// RemoveTeamMember deletes the user from a team roster.
	RemoveTeamMember(ctx context.Context, teamID, userID string) (bool, error)

	// ListTeamMembers returns rosters of the given teams in join order.
	ListTeamMembers(ctx context.Context, teamIDs ...string) ([]model.TeamMember, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) IsAudienceMember(ctx context.Context, eventID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AudienceMember{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("IsAudienceMember database error", "event_id", eventID, "user_id", userID, "error", err)
		return false, err
	}
	return count > 0, nil
}

func (r *repository) AddAudienceMember(ctx context.Context, eventID, userID string) (bool, error) {
	return r.insert(ctx, &model.AudienceMember{
		EventID:  eventID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	})
}

func (r *repository) RemoveAudienceMember(ctx context.Context, eventID, userID string) (bool, error) {
	return r.delete(ctx, &model.AudienceMember{}, "event_id = ? AND user_id = ?", eventID, userID)
}

func (r *repository) ListAudience(ctx context.Context, eventID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.AudienceMember{}).
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		r.logger.Errorw("ListAudience database error", "event_id", eventID, "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *repository) GetParticipant(ctx context.Context, eventID, userID string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		r.logger.Errorw("GetParticipant database error", "event_id", eventID, "user_id", userID, "error", err)
		return nil, err
	}
	return &p, nil
}

func (r *repository) AddParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	return r.insert(ctx, &model.Participant{
		EventID:   eventID,
		UserID:    userID,
		AppliedAt: time.Now().UTC(),
	})
}

func (r *repository) ApproveParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("event_id = ? AND user_id = ? AND approved_at IS NULL", eventID, userID).
		Update("approved_at", time.Now().UTC())
	if result.Error != nil {
		r.logger.Errorw("ApproveParticipant database error", "event_id", eventID, "user_id", userID, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) RemoveParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	return r.delete(ctx, &model.Participant{}, "event_id = ? AND user_id = ?", eventID, userID)
}

func (r *repository) ListParticipants(ctx context.Context, eventID string, pendingOnly bool) ([]string, error) {
	ids := []string{}
	q := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("event_id = ?", eventID)
	if pendingOnly {
		q = q.Where("approved_at IS NULL")
	}
	err := q.Order("applied_at ASC").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		r.logger.Errorw("ListParticipants database error", "event_id", eventID, "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *repository) FindTeamOfUser(ctx context.Context, eventID, userID string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&m).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, nil
		}
		r.logger.Errorw("FindTeamOfUser database error", "event_id", eventID, "user_id", userID, "error", err)
		return nil, err
	}
	return &m, nil
}

func (r *repository) AddTeamMember(ctx context.Context, eventID, teamID, userID string) (bool, error) {
	return r.insert(ctx, &model.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		EventID:  eventID,
		JoinedAt: time.Now().UTC(),
	})
}

func (r *repository) RemoveTeamMember(ctx context.Context, teamID, userID string) (bool, error) {
	return r.delete(ctx, &model.TeamMember{}, "team_id = ? AND user_id = ?", teamID, userID)
}

func (r *repository) ListTeamMembers(ctx context.Context, teamIDs ...string) ([]model.TeamMember, error) {
	members := []model.TeamMember{}
	if len(teamIDs) == 0 {
		return members, nil
	}
	err := r.db.WithContext(ctx).
		Where("team_id IN ?", teamIDs).
		Order("joined_at ASC").
		Order("user_id ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("ListTeamMembers database error", "team_ids", teamIDs, "error", err)
		return nil, err
	}
	return members, nil
}

// insert adds row unless it collides with an existing key.
func (r *repository) insert(ctx context.Context, row any) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		if dberr.IsDuplicate(result.Error) {
			return false, nil
		}
		r.logger.Errorw("insert roster row database error", "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) delete(ctx context.Context, row any, query string, args ...any) (bool, error) {
	result := r.db.WithContext(ctx).Where(query, args...).Delete(row)
	if result.Error != nil {
		r.logger.Errorw("delete roster row database error", "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
