// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a user.
	Create(ctx context.Context, user *model.User) error

	// GetByID finds user by id.
	GetByID(ctx context.Context, userID string) (*model.User, error)

	// ListByIDs returns the users with the given ids, in no particular order.
	ListByIDs(ctx context.Context, userIDs []string) ([]model.User, error)

	// FindByIDSuffix returns users whose id ends with suffix, oldest first.
	FindByIDSuffix(ctx context.Context, suffix string) ([]model.User, error)

	// UpdateProfile applies column updates and returns the stored user.
	UpdateProfile(ctx context.Context, userID string, updates map[string]any) (*model.User, error)

	// Search returns up to limit users whose name, email or city contains
	// query, ignoring case, ordered by name. Users in exclude are skipped.
	Search(ctx context.Context, query string, exclude []string, limit int) ([]model.User, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a user.
func (r *repository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.logger.Errorw("Create database error", "user_id", user.ID, "error", err)
		return err
	}
	return nil
}

// GetByID finds user by id.
func (r *repository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			r.logger.Debugw("GetByID user not found", "user_id", userID)
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", userID, "error", err)
		return nil, err
	}
	return &user, nil
}

// ListByIDs returns the users with the given ids.
func (r *repository) ListByIDs(ctx context.Context, userIDs []string) ([]model.User, error) {
	users := []model.User{}
	if len(userIDs) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&users).Error
	if err != nil {
		r.logger.Errorw("ListByIDs database error", "count", len(userIDs), "error", err)
		return nil, err
	}
	return users, nil
}

// FindByIDSuffix returns users whose id ends with suffix, ordered by
// creation time then id so the first element is stable across calls.
// LIKE is only a prefilter; the suffix is re-checked case-sensitively.
func (r *repository) FindByIDSuffix(ctx context.Context, suffix string) ([]model.User, error) {
	if suffix == "" || strings.ContainsAny(suffix, `%_\`) {
		return []model.User{}, nil
	}

	var candidates []model.User
	err := r.db.WithContext(ctx).
		Where("id LIKE ?", "%"+suffix).
		Order("created_at ASC").
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		r.logger.Errorw("FindByIDSuffix database error", "suffix", suffix, "error", err)
		return nil, err
	}

	users := make([]model.User, 0, len(candidates))
	for _, u := range candidates {
		if strings.HasSuffix(u.ID, suffix) {
			users = append(users, u)
		}
	}
	return users, nil
}

// UpdateProfile applies column updates and returns the stored user.
func (r *repository) UpdateProfile(ctx context.Context, userID string, updates map[string]any) (*model.User, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&model.User{ID: userID}).
			Updates(updates)
		if result.Error != nil {
			r.logger.Errorw("UpdateProfile database error", "user_id", userID, "error", result.Error)
			return nil, fmt.Errorf("update profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, model.ErrUserNotFound
		}
	}
	return r.GetByID(ctx, userID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search returns up to limit users matching query on name, email or city.
// An empty query matches everyone.
func (r *repository) Search(ctx context.Context, query string, exclude []string, limit int) ([]model.User, error) {
	users := []model.User{}
	q := r.db.WithContext(ctx).Model(&model.User{})
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		q = q.Where(
			`(LOWER(name) LIKE @p ESCAPE '\' OR LOWER(email) LIKE @p ESCAPE '\' OR LOWER(city) LIKE @p ESCAPE '\')`,
			sql.Named("p", pattern),
		)
	}
	err := q.Order("name ASC").Order("id ASC").Limit(limit).Find(&users).Error
	if err != nil {
		r.logger.Errorw("Search database error", "query", query, "error", err)
		return nil, err
	}
	return users, nil
}
