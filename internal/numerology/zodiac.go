package numerology

import "time"

type zodiacRange struct {
	month, fromDay int
	name           string
}

// Each sign starts on fromDay of month and runs into the following month.
var zodiacRanges = []zodiacRange{
	{1, 20, "Aquarius ♒"},
	{2, 19, "Pisces ♓"},
	{3, 21, "Aries ♈"},
	{4, 20, "Taurus ♉"},
	{5, 21, "Gemini ♊"},
	{6, 21, "Cancer ♋"},
	{7, 23, "Leo ♌"},
	{8, 23, "Virgo ♍"},
	{9, 23, "Libra ♎"},
	{10, 23, "Scorpio ♏"},
	{11, 22, "Sagittarius ♐"},
	{12, 22, "Capricorn ♑"},
}

// ZodiacSign returns the western zodiac sign for a day and month.
func ZodiacSign(day, month int) string {
	for _, z := range zodiacRanges {
		if month == z.month && day >= z.fromDay {
			return z.name
		}
		next := z.month%12 + 1
		if month == next && day < nextFromDay(next) {
			return z.name
		}
	}
	return "Capricorn ♑"
}

func nextFromDay(month int) int {
	for _, z := range zodiacRanges {
		if z.month == month {
			return z.fromDay
		}
	}
	return 1
}

// Age returns full years between a "DD.MM.YYYY" birth date and now.
func Age(birthday string, now time.Time) (int, error) {
	day, month, year, err := ParseDate(birthday)
	if err != nil {
		return 0, err
	}
	age := now.Year() - year
	if int(now.Month()) < month || (int(now.Month()) == month && now.Day() < day) {
		age--
	}
	return age, nil
}
