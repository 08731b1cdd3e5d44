package numerology_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/numerology"
)

func TestComputeKnownDate(t *testing.T) {
	p, err := numerology.Compute("15.04.1986")
	require.NoError(t, err)

	assert.Equal(t, 6, p.Personality)     // reduce(15)
	assert.Equal(t, 7, p.Destiny)         // reduce(1+5+0+4+1+9+8+6 = 34)
	assert.Equal(t, 4, p.GoldenAlchemist) // reduce(6+7 = 13)
	assert.Equal(t, 1, p.KarmicTasks)     // reduce(0+4+1+9+8+6 = 28)

	assert.Equal(t, [9]int{4, 6, 6, 7, 6, 1, 7, 4, 5}, p.Matrix)

	assert.Equal(t, 6, p.Elements.Fire)
	assert.Equal(t, 4, p.Elements.Earth)
	assert.Equal(t, 6, p.Elements.Air) // reduce(1+9+8+6 = 24)
	assert.Equal(t, 7, p.Elements.Water)
}

func TestComputeMasterNumberDay(t *testing.T) {
	// day 29 reduces to the master number 11 and stays there
	p, err := numerology.Compute("29.03.1990")
	require.NoError(t, err)
	assert.Equal(t, 11, p.Personality)
	assert.Equal(t, 11, p.Matrix[1])
	assert.Equal(t, 11, p.Elements.Fire)
}

func TestComputeIsPure(t *testing.T) {
	a, err := numerology.Compute("03.11.1992")
	require.NoError(t, err)
	b, err := numerology.Compute("03.11.1992")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeRejectsBadDates(t *testing.T) {
	cases := []string{
		"",
		"15.04",
		"15/04/1986",
		"aa.bb.cccc",
		"32.01.1990",
		"00.01.1990",
		"15.13.1990",
		"15.00.1990",
		"15.04.1899",
		"15.04.2101",
		"31.02.2000", // not a real calendar date
		"31.04.1990",
		"29.02.1999", // not a leap year
	}
	for _, c := range cases {
		_, err := numerology.Compute(c)
		assert.ErrorIs(t, err, apperr.ErrValidation, "date %q", c)
	}
}

func TestComputeAcceptsLeapDay(t *testing.T) {
	_, err := numerology.Compute("29.02.2000")
	assert.NoError(t, err)
}

func TestZodiacSign(t *testing.T) {
	cases := []struct {
		day, month int
		want       string
	}{
		{15, 4, "Aries ♈"},
		{20, 4, "Taurus ♉"},
		{1, 1, "Capricorn ♑"},
		{25, 12, "Capricorn ♑"},
		{20, 1, "Aquarius ♒"},
		{18, 2, "Aquarius ♒"},
		{19, 2, "Pisces ♓"},
		{20, 3, "Pisces ♓"},
		{21, 3, "Aries ♈"},
		{23, 8, "Virgo ♍"},
		{22, 11, "Sagittarius ♐"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, numerology.ZodiacSign(c.day, c.month), "%d.%d", c.day, c.month)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	age, err := numerology.Age("15.04.1986", now)
	require.NoError(t, err)
	assert.Equal(t, 40, age)

	// birthday later this year: not yet celebrated
	age, err = numerology.Age("02.10.1996", now)
	require.NoError(t, err)
	assert.Equal(t, 29, age)

	_, err = numerology.Age("bad", now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
