// Package repository provides data access layer for tickets.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/ticket/model"
)

// Repository defines the interface for ticket data access operations.
type Repository interface {
	// Create inserts an issued ticket.
	Create(ctx context.Context, ticket *model.Ticket) error

	// Adopt stores a ticket first seen at the door, keeping an existing row.
	Adopt(ctx context.Context, ticket *model.Ticket) error

	// GetByID finds a ticket by id.
	GetByID(ctx context.Context, ticketID string) (*model.Ticket, error)

	// MarkScanned counts a scan. first is true only for the scan that set
	// consumed_at; count is the scan total including this one.
	MarkScanned(ctx context.Context, ticketID string) (first bool, count int, err error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new ticket repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, ticket *model.Ticket) error {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		r.logger.Errorw("Create database error", "ticket_id", ticket.ID, "error", err)
		return err
	}
	return nil
}

func (r *repository) Adopt(ctx context.Context, ticket *model.Ticket) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ticket).Error
	if err != nil && !dberr.IsDuplicate(err) {
		r.logger.Errorw("Adopt database error", "ticket_id", ticket.ID, "error", err)
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", ticketID).First(&ticket).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, model.ErrTicketNotFound
		}
		r.logger.Errorw("GetByID database error", "ticket_id", ticketID, "error", err)
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) MarkScanned(ctx context.Context, ticketID string) (bool, int, error) {
	var (
		first bool
		count int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Ticket{}).
			Where("id = ? AND consumed_at IS NULL", ticketID).
			Updates(map[string]any{
				"consumed_at": time.Now().UTC(),
				"scan_count":  gorm.Expr("scan_count + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		first = result.RowsAffected > 0

		if !first {
			result = tx.Model(&model.Ticket{}).
				Where("id = ?", ticketID).
				Update("scan_count", gorm.Expr("scan_count + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return model.ErrTicketNotFound
			}
		}

		var ticket model.Ticket
		if err := tx.Select("scan_count").Where("id = ?", ticketID).First(&ticket).Error; err != nil {
			return err
		}
		count = ticket.ScanCount
		return nil
	})
	if err != nil {
		r.logger.Errorw("MarkScanned database error", "ticket_id", ticketID, "error", err)
		return false, 0, err
	}
	return first, count, nil
}
