package numerology

import "math"

// Result carries the headline percentage, the three factor scores and both
// profiles so the front-end can render the full breakdown.
type Result struct {
	Percentage      float64 `json:"percentage"`
	MatrixScore     float64 `json:"matrix_score"`
	ElementsScore   float64 `json:"elements_score"`
	KeyNumbersScore float64 `json:"key_numbers_score"`
	ProfileA        Profile `json:"profile_a"`
	ProfileB        Profile `json:"profile_b"`
}

// Score computes the compatibility of two birth dates ("DD.MM.YYYY").
// The headline percentage equals the matrix score; elements and key-number
// scores are returned alongside for display.
func Score(dateA, dateB string) (Result, error) {
	pa, err := Compute(dateA)
	if err != nil {
		return Result{}, err
	}
	pb, err := Compute(dateB)
	if err != nil {
		return Result{}, err
	}

	matrix := MatrixScore(pa.Matrix, pb.Matrix)
	elements := ElementsScore(pa.Elements, pb.Elements)
	keyNumbers := KeyNumbersScore(pa, pb)

	return Result{
		Percentage:      math.Round(matrix*10) / 10,
		MatrixScore:     matrix,
		ElementsScore:   elements,
		KeyNumbersScore: keyNumbers,
		ProfileA:        pa,
		ProfileB:        pb,
	}, nil
}

// MatrixScore compares the 9 aligned matrix cells and returns a 0-100 score.
// Identical cells always score the maximum; this covers master-number values
// (11, 22, 33) the hand-authored table does not enumerate.
func MatrixScore(a, b [9]int) float64 {
	total := 0
	for i := 0; i < 9; i++ {
		if a[i] == b[i] {
			total += 10
			continue
		}
		total += lookupPair(matrixTable, a[i], b[i])
	}
	return float64(total) / 90 * 100
}

// ElementsScore compares the four elements pairwise and returns a 0-100 score.
func ElementsScore(a, b Elements) float64 {
	total := 0
	pairs := [4][2]int{
		{a.Fire, b.Fire},
		{a.Earth, b.Earth},
		{a.Air, b.Air},
		{a.Water, b.Water},
	}
	for _, p := range pairs {
		total += elementPairScore(p[0], p[1])
	}
	return float64(total) / 40 * 100
}

func elementPairScore(v1, v2 int) int {
	diff := v1 - v2
	if diff < 0 {
		diff = -diff
	}
	switch {
	case v1 == v2:
		return 10 // identical
	case diff <= 2:
		return 8 // harmonious
	case diff <= 4:
		return 6 // neutral
	case diff >= 6 && (v1+v2 == 10 || diff >= 8):
		return 2 // opposite
	default:
		return 4 // challenging
	}
}

// KeyNumbersScore averages the destiny, personality and karmic-task pair
// lookups and returns a 0-100 score.
func KeyNumbersScore(a, b Profile) float64 {
	destiny := lookupPair(keyNumbersTable, a.Destiny, b.Destiny)
	personality := lookupPair(keyNumbersTable, a.Personality, b.Personality)
	karmic := lookupPair(keyNumbersTable, a.KarmicTasks, b.KarmicTasks)

	avg := float64(destiny+personality+karmic) / 3
	return avg / 10 * 100
}
