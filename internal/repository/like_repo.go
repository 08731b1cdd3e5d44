package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mikheydazz/starmatch-bot/internal/db"
)

// LikeRepository provides data access for likes and mutual matches.
// It owns the like → mutual-match state machine at the SQL level.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// canonicalPair orders two user IDs so a pair always maps to the same
// mutual-match row.
func canonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// Like records a like from → to and promotes the pair to a mutual match when
// the reverse edge exists.
//
// The whole sequence runs in one transaction:
//  1. If the pair is already mutual, report mutual without touching anything.
//  2. Insert the like edge; a duplicate from the same direction is a no-op.
//  3. If the reverse edge exists, delete both edges and insert the canonical
//     mutual row in the same transaction.
//
// The mutual insert uses ON CONFLICT DO NOTHING, so two handlers racing on
// like(A,B) / like(B,A) converge on a single row: the loser's insert affects
// zero rows and is reported as mutual but not newly promoted.
//
// Returns (mutual, promoted): promoted is true only for the writer that
// actually created the match row, which is the one that should trigger
// notifications.
func (r *LikeRepository) Like(ctx context.Context, from, to string) (mutual, promoted bool, err error) {
	u1, u2 := canonicalPair(from, to)

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&db.MutualMatch{}).
			Where("user1_id = ? AND user2_id = ?", u1, u2).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			mutual = true
			return nil
		}

		edge := db.Like{FromUserID: from, ToUserID: to}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return err
		}

		var reverse int64
		if err := tx.Model(&db.Like{}).
			Where("from_user_id = ? AND to_user_id = ?", to, from).
			Count(&reverse).Error; err != nil {
			return err
		}
		if reverse == 0 {
			return nil
		}

		if err := tx.
			Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
				from, to, to, from).
			Delete(&db.Like{}).Error; err != nil {
			return err
		}

		match := db.MutualMatch{User1ID: u1, User2ID: u2}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&match)
		if res.Error != nil {
			return res.Error
		}
		mutual = true
		promoted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return mutual, promoted, nil
}

// IsMutual reports whether a mutual match exists for the pair, in either
// argument order.
func (r *LikeRepository) IsMutual(ctx context.Context, a, b string) (bool, error) {
	u1, u2 := canonicalPair(a, b)
	var count int64
	err := r.db.WithContext(ctx).Model(&db.MutualMatch{}).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Count(&count).Error
	return count > 0, err
}

// MatchesFor returns the IDs of everyone the user has a mutual match with,
// newest first.
func (r *LikeRepository) MatchesFor(ctx context.Context, userID string) ([]string, error) {
	var matches []db.MutualMatch
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	others := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.User1ID == userID {
			others = append(others, m.User2ID)
		} else {
			others = append(others, m.User1ID)
		}
	}
	return others, nil
}

// CountReceived returns how many one-sided likes the user currently has.
// Promoted pairs no longer count; their edges were removed on promotion.
func (r *LikeRepository) CountReceived(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Like{}).
		Where("to_user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// HasLike reports whether a one-sided edge from → to exists.
func (r *LikeRepository) HasLike(ctx context.Context, from, to string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", from, to).
		Count(&count).Error
	return count > 0, err
}
