package db

import (
	"time"
)

// User holds a dating profile. Keyed by the messenger-assigned string ID.
// Balance is the compatibility-check credit count; Hidden is flipped by the
// moderation flow once the report threshold is reached or a ban lands.
type User struct {
	UserID    string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:128;not null"`
	Gender    string    `gorm:"size:16;not null;index:idx_users_gender"`
	Birthday  string    `gorm:"size:10;not null"`
	Age       int       `gorm:"not null"`
	Bio       string    `gorm:"type:text"`
	Zodiac    string    `gorm:"size:32;index:idx_users_zodiac"`
	City      string    `gorm:"size:64;index:idx_users_city"`
	PhotoID   string    `gorm:"size:128"`
	Balance   int       `gorm:"not null;default:3"`
	Hidden    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Like is a one-sided interest edge. The composite PK makes the ordered pair
// unique; the row is deleted the moment the pair is promoted to a MutualMatch.
type Like struct {
	FromUserID string    `gorm:"primaryKey;size:64"`
	ToUserID   string    `gorm:"primaryKey;size:64;index:idx_likes_to"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// MutualMatch is the immutable record of reciprocal interest. Rows are stored
// in canonical order (User1ID < User2ID), so the composite PK allows at most
// one record per pair and makes concurrent double-inserts converge.
type MutualMatch struct {
	User1ID   string    `gorm:"primaryKey;size:64"`
	User2ID   string    `gorm:"primaryKey;size:64;index:idx_mutual_user2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Report is a complaint filed against a user. The unique index on the
// (reported, reporter) pair caps each reporter at one report per target.
type Report struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	ReportedUserID string    `gorm:"size:64;not null;uniqueIndex:idx_reports_pair,priority:1"`
	ReporterUserID string    `gorm:"size:64;not null;uniqueIndex:idx_reports_pair,priority:2"`
	Reason         string    `gorm:"size:255"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Ban marks a user as blocked. One row per user; re-banning overwrites.
type Ban struct {
	UserID    string    `gorm:"primaryKey;size:64"`
	Reason    string    `gorm:"size:255"`
	BannedBy  string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Payment records a credit top-up applied to a user's balance.
type Payment struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:64;not null;index:idx_payments_user"`
	Amount      int       `gorm:"not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
