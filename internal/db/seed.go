package db

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedBirthdays = []string{
	"15.04.1986", "03.11.1992", "27.07.1989", "09.01.1995", "21.09.1983",
	"14.02.1990", "30.06.1987", "08.12.1993", "19.05.1985", "02.10.1996",
	"11.03.1991", "25.08.1988", "06.04.1994", "17.11.1984", "29.01.1997",
	"12.07.1990", "23.02.1986", "04.09.1992", "16.12.1989", "07.05.1995",
}

var seedCities = []string{"Moscow", "Saint Petersburg", "Kazan", "Novosibirsk"}

// SeedTestData resets the database and populates it with demo profiles and a
// like graph for development.
//
// Behavior:
//  1. Clears profiles, likes, matches, reports, bans and payments.
//  2. Creates 20 profiles (10 male, 10 female) with fixed birthdays.
//  3. Sprinkles one-sided likes and promotes every reciprocated pair the same
//     way the live flow does (edges removed, canonical mutual row inserted).
func SeedTestData(gdb *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"likes", "mutual_matches", "reports", "bans", "payments", "users"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := 1; i <= 20; i++ {
		gender := "male"
		if i > 10 {
			gender = "female"
		}
		user := User{
			UserID:   fmt.Sprintf("seed-%d", i),
			Name:     fmt.Sprintf("Demo User %d", i),
			Gender:   gender,
			Birthday: seedBirthdays[(i-1)%len(seedBirthdays)],
			Age:      20 + r.Intn(20),
			Bio:      "Seeded demo profile",
			Zodiac:   "Aries ♈",
			City:     seedCities[r.Intn(len(seedCities))],
			Balance:  3,
		}
		if err := gdb.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}

	// one-sided likes, ~70% density over a few random pairs per user
	for i := 1; i <= 20; i++ {
		for j := 0; j < 5; j++ {
			target := r.Intn(20) + 1
			if target == i || r.Intn(100) >= 70 {
				continue
			}
			like := Like{
				FromUserID: fmt.Sprintf("seed-%d", i),
				ToUserID:   fmt.Sprintf("seed-%d", target),
			}
			if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
		}
	}

	// promote reciprocated pairs exactly as the live flow would
	var pairs []Like
	if err := gdb.
		Table("likes l").
		Select("l.from_user_id, l.to_user_id").
		Joins("JOIN likes r ON r.from_user_id = l.to_user_id AND r.to_user_id = l.from_user_id").
		Where("l.from_user_id < l.to_user_id").
		Find(&pairs).Error; err != nil {
		return fmt.Errorf("failed to find reciprocated likes: %w", err)
	}
	for _, p := range pairs {
		err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
					p.FromUserID, p.ToUserID, p.ToUserID, p.FromUserID).
				Delete(&Like{}).Error; err != nil {
				return err
			}
			match := MutualMatch{User1ID: p.FromUserID, User2ID: p.ToUserID}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&match).Error
		})
		if err != nil {
			return fmt.Errorf("failed to promote seeded pair: %w", err)
		}
	}

	return nil
}
