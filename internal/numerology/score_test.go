package numerology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikheydazz/starmatch-bot/internal/apperr"
	"github.com/Mikheydazz/starmatch-bot/internal/numerology"
)

func TestMatrixScoreSelfIsMax(t *testing.T) {
	dates := []string{"15.04.1986", "03.11.1992", "29.03.1990", "22.06.2000"}
	for _, d := range dates {
		p, err := numerology.Compute(d)
		require.NoError(t, err)
		assert.Equal(t, 100.0, numerology.MatrixScore(p.Matrix, p.Matrix), "date %s", d)
	}
}

func TestElementsScoreSelfIsMax(t *testing.T) {
	e := numerology.Elements{Fire: 6, Earth: 4, Air: 6, Water: 7}
	assert.Equal(t, 100.0, numerology.ElementsScore(e, e))

	withMaster := numerology.Elements{Fire: 11, Earth: 2, Air: 9, Water: 22}
	assert.Equal(t, 100.0, numerology.ElementsScore(withMaster, withMaster))
}

func TestElementsScoreBands(t *testing.T) {
	base := numerology.Elements{Fire: 5, Earth: 5, Air: 5, Water: 5}

	// diff 2 on every element → harmonious, 4*8/40
	harmonious := numerology.Elements{Fire: 7, Earth: 7, Air: 7, Water: 7}
	assert.InDelta(t, 80.0, numerology.ElementsScore(base, harmonious), 1e-9)

	// diff 4 on every element → neutral, 4*6/40
	neutral := numerology.Elements{Fire: 9, Earth: 9, Air: 9, Water: 9}
	assert.InDelta(t, 60.0, numerology.ElementsScore(base, neutral), 1e-9)

	// 1 vs 9: diff 8 and sum 10 → opposite, 4*2/40
	ones := numerology.Elements{Fire: 1, Earth: 1, Air: 1, Water: 1}
	nines := numerology.Elements{Fire: 9, Earth: 9, Air: 9, Water: 9}
	assert.InDelta(t, 20.0, numerology.ElementsScore(ones, nines), 1e-9)

	// 1 vs 6: diff 5, not opposite → challenging, 4*4/40
	sixes := numerology.Elements{Fire: 6, Earth: 6, Air: 6, Water: 6}
	assert.InDelta(t, 40.0, numerology.ElementsScore(ones, sixes), 1e-9)
}

// The authored table lists (1,7) as both 9 and 4, and (4,5) as both 6 and 4;
// the later entry wins.
func TestMatrixTableDuplicatesResolveLastWins(t *testing.T) {
	a := [9]int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	b := a
	b[0] = 7 // (1,7) in cell 1, rest identical
	assert.InDelta(t, float64(8*10+4)/90*100, numerology.MatrixScore(a, b), 1e-9)

	c := a
	c[3] = 5 // (4,5) in cell 4, rest identical
	assert.InDelta(t, float64(8*10+4)/90*100, numerology.MatrixScore(a, c), 1e-9)
}

func TestMatrixScoreUnmappedPairDefaults(t *testing.T) {
	a := [9]int{11, 2, 3, 4, 5, 6, 7, 8, 9}
	b := [9]int{3, 2, 3, 4, 5, 6, 7, 8, 9}
	// (11,3) is unmapped → 5, rest identical
	assert.InDelta(t, float64(8*10+5)/90*100, numerology.MatrixScore(a, b), 1e-9)
}

func TestKeyNumbersScore(t *testing.T) {
	a := numerology.Profile{Destiny: 1, Personality: 2, KarmicTasks: 3}
	b := numerology.Profile{Destiny: 8, Personality: 9, KarmicTasks: 4}
	// destiny (1,8)=9, personality (2,9)=7, karmic (3,4)=default 5 → avg 7
	assert.InDelta(t, 70.0, numerology.KeyNumbersScore(a, b), 1e-9)

	// all defaults
	c := numerology.Profile{Destiny: 5, Personality: 3, KarmicTasks: 8}
	d := numerology.Profile{Destiny: 2, Personality: 6, KarmicTasks: 5}
	assert.InDelta(t, 50.0, numerology.KeyNumbersScore(c, d), 1e-9)
}

func TestScoreHeadlineEqualsMatrixScore(t *testing.T) {
	res, err := numerology.Score("15.04.1986", "03.11.1992")
	require.NoError(t, err)

	assert.InDelta(t, res.MatrixScore, res.Percentage, 0.05)
	assert.GreaterOrEqual(t, res.Percentage, 0.0)
	assert.LessOrEqual(t, res.Percentage, 100.0)

	// the other factors are computed but excluded from the headline
	assert.NotZero(t, res.ElementsScore)
	assert.NotZero(t, res.KeyNumbersScore)
}

func TestScoreSelf(t *testing.T) {
	res, err := numerology.Score("15.04.1986", "15.04.1986")
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.Percentage)
	assert.Equal(t, 100.0, res.MatrixScore)
	assert.Equal(t, 100.0, res.ElementsScore)
	assert.Equal(t, res.ProfileA, res.ProfileB)
}

func TestScorePropagatesValidationError(t *testing.T) {
	_, err := numerology.Score("31.02.2000", "15.04.1986")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = numerology.Score("15.04.1986", "not-a-date")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
