// Package repository provides data access layer for checkout sessions.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/payment/model"
)

// Repository defines the interface for checkout session data access.
type Repository interface {
	// Create inserts a session.
	Create(ctx context.Context, session *model.CheckoutSession) error

	// GetByID finds a session.
	GetByID(ctx context.Context, sessionID string) (*model.CheckoutSession, error)

	// Advance moves a session from one status to the next. It returns false
	// when the session was not in from.
	Advance(ctx context.Context, sessionID string, from, to model.Status) (bool, error)

	// AttachTicket records the issued ticket and marks the session ticketed.
	// It returns false when the session was not granted.
	AttachTicket(ctx context.Context, sessionID, ticketID string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new checkout session repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, session *model.CheckoutSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		r.logger.Errorw("Create database error", "session_id", session.SessionID, "error", err)
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	var session model.CheckoutSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, model.ErrSessionNotFound
		}
		r.logger.Errorw("GetByID database error", "session_id", sessionID, "error", err)
		return nil, err
	}
	return &session, nil
}

func (r *repository) Advance(ctx context.Context, sessionID string, from, to model.Status) (bool, error) {
	return r.update(ctx, sessionID, from, map[string]any{"status": to})
}

func (r *repository) AttachTicket(ctx context.Context, sessionID, ticketID string) (bool, error) {
	return r.update(ctx, sessionID, model.StatusGranted, map[string]any{
		"status":    model.StatusTicketed,
		"ticket_id": ticketID,
	})
}

func (r *repository) update(ctx context.Context, sessionID string, from model.Status, values map[string]any) (bool, error) {
	values["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.CheckoutSession{}).
		Where("session_id = ? AND status = ?", sessionID, from).
		Updates(values)
	if result.Error != nil {
		r.logger.Errorw("update checkout session database error", "session_id", sessionID, "from", from, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
