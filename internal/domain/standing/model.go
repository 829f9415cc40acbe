package standing

// Row represents a group table row for one team. Goal columns are float64 because
// any finite numeric score counts, fractional ones included.
type Row struct {
	Position       int
	Team           string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       float64
	GoalsAgainst   float64
	GoalDifference float64
	Points         int
}

const (
	pointsForWin  = 3
	pointsForDraw = 1
)
