package numerology

// pairScore maps an ordered value pair to a 0-10 score.
type pairScore struct {
	a, b  int
	score int
}

// defaultPairScore is used for pairs absent from a table.
const defaultPairScore = 5

// matrixPairScores is the hand-authored cell compatibility table. The list is
// ordered and folded last-entry-wins: (1,7) and (4,5) appear twice with
// different scores, and the later "challenging" entries override the earlier
// ones, matching the behavior the tables were originally authored with.
var matrixPairScores = []pairScore{
	// identical values
	{1, 1, 10}, {2, 2, 10}, {3, 3, 10}, {4, 4, 10}, {5, 5, 10},
	{6, 6, 10}, {7, 7, 10}, {8, 8, 10}, {9, 9, 10},

	// harmonious combinations
	{1, 4, 9}, {1, 7, 9}, {4, 1, 9}, {7, 1, 9},
	{2, 5, 9}, {2, 8, 9}, {5, 2, 9}, {8, 2, 9},
	{3, 6, 9}, {3, 9, 9}, {6, 3, 9}, {9, 3, 9},

	{1, 8, 8}, {8, 1, 8}, // leader + organizer
	{2, 6, 8}, {6, 2, 8}, // diplomat + peacemaker
	{4, 7, 8}, {7, 4, 8}, // pragmatist + analyst

	// neutral
	{1, 2, 6}, {1, 3, 6}, {1, 5, 6}, {1, 6, 6}, {1, 9, 6},
	{2, 1, 6}, {2, 3, 6}, {2, 4, 6}, {2, 7, 6}, {2, 9, 6},
	{3, 1, 6}, {3, 2, 6}, {3, 4, 6}, {3, 5, 6}, {3, 7, 6}, {3, 8, 6},
	{4, 2, 6}, {4, 3, 6}, {4, 5, 6}, {4, 6, 6}, {4, 8, 6}, {4, 9, 6},
	{5, 1, 6}, {5, 3, 6}, {5, 4, 6}, {5, 6, 6}, {5, 7, 6}, {5, 9, 6},
	{6, 1, 6}, {6, 4, 6}, {6, 5, 6}, {6, 7, 6}, {6, 8, 6}, {6, 9, 6},
	{7, 2, 6}, {7, 3, 6}, {7, 5, 6}, {7, 6, 6}, {7, 8, 6}, {7, 9, 6},
	{8, 3, 6}, {8, 4, 6}, {8, 6, 6}, {8, 7, 6}, {8, 9, 6},
	{9, 1, 6}, {9, 2, 6}, {9, 4, 6}, {9, 5, 6}, {9, 6, 6}, {9, 7, 6}, {9, 8, 6},

	// challenging combinations (override earlier duplicates)
	{4, 5, 4}, {5, 4, 4}, // stability vs change
	{1, 7, 4}, {7, 1, 4}, // pragmatist vs analyst conflict
	{8, 9, 4}, {9, 8, 4}, // material vs spiritual
}

// keyNumberPairScores scores destiny, personality and karmic-task pairs.
var keyNumberPairScores = []pairScore{
	// identical values
	{1, 1, 9}, {2, 2, 9}, {3, 3, 9}, {4, 4, 9}, {5, 5, 9},
	{6, 6, 9}, {7, 7, 9}, {8, 8, 9}, {9, 9, 9},

	{1, 4, 8}, {1, 7, 8}, {4, 1, 8}, {7, 1, 8},
	{1, 8, 9}, {8, 1, 9}, // ideal business partnership
	{2, 6, 8}, {6, 2, 8},
	{3, 9, 8}, {9, 3, 8},
	{4, 7, 8}, {7, 4, 8},

	{2, 9, 7}, {9, 2, 7}, // complementary
	{1, 2, 6}, {2, 1, 6},
}

func buildTable(entries []pairScore) map[[2]int]int {
	t := make(map[[2]int]int, len(entries))
	for _, e := range entries {
		t[[2]int{e.a, e.b}] = e.score
	}
	return t
}

var (
	matrixTable     = buildTable(matrixPairScores)
	keyNumbersTable = buildTable(keyNumberPairScores)
)

func lookupPair(table map[[2]int]int, a, b int) int {
	if s, ok := table[[2]int{a, b}]; ok {
		return s
	}
	return defaultPairScore
}
