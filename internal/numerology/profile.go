package numerology

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
)

// DateLayout is the only accepted birth date format.
const DateLayout = "02.01.2006"

// Elements is the four-valued elemental signature of a birth date.
type Elements struct {
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Air   int `json:"air"`
	Water int `json:"water"`
}

// Profile is the full numeric profile derived from a birth date.
// It is recomputed on demand and never persisted.
type Profile struct {
	Personality     int      `json:"personality"`
	Destiny         int      `json:"destiny"`
	GoldenAlchemist int      `json:"golden_alchemist"`
	KarmicTasks     int      `json:"karmic_tasks"`
	Matrix          [9]int   `json:"matrix"`
	Elements        Elements `json:"elements"`
}

// ParseDate validates a "DD.MM.YYYY" string and returns its parts.
// Day must be 1-31, month 1-12, year 1900-2100, and the combination must be a
// real calendar date. All checks run before any computation.
func ParseDate(s string) (day, month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return 0, 0, 0, apperr.Validation("birth date must be in DD.MM.YYYY format, got %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, apperr.Validation("birth date must be in DD.MM.YYYY format, got %q", s)
		}
		nums[i] = n
	}
	day, month, year = nums[0], nums[1], nums[2]

	if day < 1 || day > 31 {
		return 0, 0, 0, apperr.Validation("day %d out of range", day)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, apperr.Validation("month %d out of range", month)
	}
	if year < 1900 || year > 2100 {
		return 0, 0, 0, apperr.Validation("year %d out of range", year)
	}

	// reject combinations like 31.02 that normalize to a different date
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return 0, 0, 0, apperr.Validation("%q is not a real calendar date", s)
	}

	return day, month, year, nil
}

// Compute derives the full numeric profile for a "DD.MM.YYYY" birth date.
// Pure: same input, same output, no side effects.
func Compute(dateStr string) (Profile, error) {
	day, month, year, err := ParseDate(dateStr)
	if err != nil {
		return Profile{}, err
	}

	personality := ReduceDigits(day)

	fullSum := DigitSum(day) + DigitSum(month) + DigitSum(year)
	destiny := ReduceDigits(fullSum)

	goldenAlchemist := ReduceDigits(personality + destiny)

	monthYear := fmt.Sprintf("%02d%04d", month, year)
	monthYearSum := 0
	for _, r := range monthYear {
		monthYearSum += int(r - '0')
	}
	karmicTasks := ReduceDigits(monthYearSum)

	var m [9]int
	m[0] = ReduceDigits(month)
	m[1] = personality
	m[2] = ReduceDigits(DigitSum(year))
	m[3] = ReduceDigits(m[0] + m[1] + m[2])
	m[4] = personality
	m[5] = karmicTasks
	m[6] = destiny
	m[7] = goldenAlchemist
	m[8] = ReduceDigits(m[0] + m[1] + m[2] + m[3] + m[4] + m[5] + m[6] + m[7])

	return Profile{
		Personality:     personality,
		Destiny:         destiny,
		GoldenAlchemist: goldenAlchemist,
		KarmicTasks:     karmicTasks,
		Matrix:          m,
		Elements:        computeElements(day, month, year),
	}, nil
}

func computeElements(day, month, year int) Elements {
	fire := ReduceDigits(day)
	earth := ReduceDigits(month)
	air := ReduceDigits(DigitSum(year))
	water := ReduceDigits(fire + earth + air)
	return Elements{Fire: fire, Earth: earth, Air: air, Water: water}
}
