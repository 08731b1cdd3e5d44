package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/db"
	"github.com/Mikheydazz/starmatch-bot/internal/utils/pagination"
)

// UserRepository provides data access for profiles, balances and payments.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Save upserts a profile keyed by UserID. Registration and profile edits go
// through the same path, as the bot's save flow always writes the full row.
func (r *UserRepository) Save(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "gender", "birthday", "age", "bio", "zodiac", "city", "photo_id",
			}),
		}).
		Create(user).Error
}

// Get fetches a profile by ID. Missing profiles surface as ErrNotFound so
// callers fail explicitly instead of computing with defaults.
func (r *UserRepository) Get(ctx context.Context, userID string) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %s", userID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a profile with the given ID is stored.
func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.User{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// SpendBalance atomically deducts amount credits. The conditional UPDATE only
// matches when the balance covers the amount, so concurrent spends cannot
// drive it negative.
func (r *UserRepository) SpendBalance(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&db.User{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		exists, err := r.Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("user %s", userID)
		}
		return fmt.Errorf("%w: need %d credits", apperr.ErrInsufficientBalance, amount)
	}
	return nil
}

// AddBalance credits a user's balance (refunds, admin grants).
func (r *UserRepository) AddBalance(ctx context.Context, userID string, amount int) error {
	if amount == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&db.User{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user %s", userID)
	}
	return nil
}

// AddPayment records a top-up and applies it to the balance in one
// transaction.
func (r *UserRepository) AddPayment(ctx context.Context, userID string, amount int, description string) (*db.Payment, error) {
	payment := &db.Payment{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db.User{}).
			Where("user_id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("user %s", userID)
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// PaymentsFor returns a user's top-up history, newest first.
func (r *UserRepository) PaymentsFor(ctx context.Context, userID string) ([]db.Payment, error) {
	var payments []db.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// BrowseFilter narrows the candidate listing.
type BrowseFilter struct {
	Gender string
	Zodiac string
	City   string
}

// Browse returns visible candidate profiles for a viewer.
//
// Behavior:
//   - Excludes the viewer, hidden profiles and banned users.
//   - Optional gender / zodiac / city filters.
//   - Ordered by created_at DESC, user_id DESC.
//   - Cursor-based pagination via an opaque token.
func (r *UserRepository) Browse(
	ctx context.Context,
	viewerID string,
	filter BrowseFilter,
	paginationToken *string,
	limit int,
) ([]db.User, *string, error) {
	var users []db.User

	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, apperr.Validation("%v", err)
	}

	query := r.db.WithContext(ctx).
		Table("users u").
		Where("u.user_id != ? AND u.hidden = ?", viewerID, false).
		Where("NOT EXISTS (SELECT 1 FROM bans b WHERE b.user_id = u.user_id)").
		Order("u.created_at DESC, u.user_id DESC").
		Limit(limit + 1)

	if filter.Gender != "" {
		query = query.Where("u.gender = ?", filter.Gender)
	}
	if filter.Zodiac != "" {
		query = query.Where("u.zodiac LIKE ?", "%"+filter.Zodiac+"%")
	}
	if filter.City != "" {
		query = query.Where("u.city = ?", filter.City)
	}

	if cursor.UserID != "" && cursor.CreatedUnix > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix)
		query = query.Where(
			"(u.created_at < ? OR (u.created_at = ? AND u.user_id < ?))",
			ts, ts, cursor.UserID,
		)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(users) > limit {
		last := users[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			UserID:      last.UserID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		users = users[:limit]
	}

	return users, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
