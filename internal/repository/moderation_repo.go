package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mikheydazz/starmatch-bot/internal/db"
)

// ModerationRepository provides data access for reports, bans and the hidden
// flag on profiles.
type ModerationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new repository bound to the given DB connection.
func NewModerationRepository(database *gorm.DB) *ModerationRepository {
	return &ModerationRepository{db: database}
}

// ReportedUser is one row of the most-reported listing.
type ReportedUser struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	ReportCount int64  `json:"report_count"`
}

// AddReport files a report and applies the auto-hide rule in one transaction.
//
// Behavior:
//   - A second report from the same reporter against the same target is
//     rejected (accepted=false) and leaves the count unchanged. The unique
//     index on (reported, reporter) plus ON CONFLICT DO NOTHING makes two
//     concurrent first reports converge instead of erroring.
//   - The count is recomputed inside the transaction; when it reaches the
//     threshold, hidden is flipped in the same transaction, so two concurrent
//     reports cannot both miss the crossing.
//
// crossed is true exactly when this insert made the count reach the
// threshold, which is the moment the moderator notification fires.
func (r *ModerationRepository) AddReport(ctx context.Context, reported, reporter, reason string, threshold int) (accepted bool, total int64, crossed bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		report := db.Report{
			ReportedUserID: reported,
			ReporterUserID: reporter,
			Reason:         reason,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&report)
		if res.Error != nil {
			return res.Error
		}
		accepted = res.RowsAffected > 0

		if err := tx.Model(&db.Report{}).
			Where("reported_user_id = ?", reported).
			Count(&total).Error; err != nil {
			return err
		}

		if accepted && total >= int64(threshold) {
			if err := tx.Model(&db.User{}).
				Where("user_id = ?", reported).
				Update("hidden", true).Error; err != nil {
				return err
			}
			crossed = total == int64(threshold)
		}
		return nil
	})
	if err != nil {
		return false, 0, false, err
	}
	return accepted, total, crossed, nil
}

// ReportCount returns the live number of reports against a user.
func (r *ModerationRepository) ReportCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Report{}).
		Where("reported_user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Ban blocks a user: upserts the ban record, hides the profile and purges all
// reports against them, all in one transaction. Reports carry no further value
// once the user is banned.
func (r *ModerationRepository) Ban(ctx context.Context, userID, reason, bannedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ban := db.Ban{UserID: userID, Reason: reason, BannedBy: bannedBy}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reason", "banned_by"}),
		}).Create(&ban).Error; err != nil {
			return err
		}

		if err := tx.Model(&db.User{}).
			Where("user_id = ?", userID).
			Update("hidden", true).Error; err != nil {
			return err
		}

		return tx.Where("reported_user_id = ?", userID).Delete(&db.Report{}).Error
	})
}

// Unban lifts a ban and unhides the profile. Purged reports are not restored;
// a freshly unbanned profile starts with zero reports.
func (r *ModerationRepository) Unban(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&db.Ban{}).Error; err != nil {
			return err
		}
		return tx.Model(&db.User{}).
			Where("user_id = ?", userID).
			Update("hidden", false).Error
	})
}

// IsBanned reports whether a ban record exists for the user.
func (r *ModerationRepository) IsBanned(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Ban{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// MostReported lists visible users ordered by report count, for the
// moderation review surface.
func (r *ModerationRepository) MostReported(ctx context.Context, limit int) ([]ReportedUser, error) {
	var rows []ReportedUser
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.user_id AS user_id, u.name AS name, COUNT(r.id) AS report_count").
		Joins("JOIN reports r ON r.reported_user_id = u.user_id").
		Where("u.hidden = ?", false).
		Group("u.user_id, u.name").
		Order("report_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ReportsFor returns every report filed against a user, newest first.
func (r *ModerationRepository) ReportsFor(ctx context.Context, userID string) ([]db.Report, error) {
	var reports []db.Report
	err := r.db.WithContext(ctx).
		Where("reported_user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// BannedUsers lists all current bans, newest first.
func (r *ModerationRepository) BannedUsers(ctx context.Context) ([]db.Ban, error) {
	var bans []db.Ban
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&bans).Error
	return bans, err
}
