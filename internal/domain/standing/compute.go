package standing

import (
	"sort"

	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NameLanguage is the collation locale used to break ties by team name.
var NameLanguage = language.Arabic

type tally struct {
	team         string
	played       int
	won          int
	drawn        int
	lost         int
	goalsFor     float64
	goalsAgainst float64
	points       int
}

func (t *tally) goalDifference() float64 {
	return t.goalsFor - t.goalsAgainst
}

// Compute builds the ranked table of one group from its played matches.
//
// Every team named in the group's fixtures gets a row, even without a played match.
// Rows are ordered by points, goal difference and goals for (all descending), then
// by team name in NameLanguage collation. Remaining ties keep first-appearance order.
func Compute(matches []match.Match, group string) []Row {
	groupMatches := match.FilterByGroup(matches, group)

	index := make(map[string]*tally)
	seeded := make([]*tally, 0)
	seed := func(team string) {
		if _, ok := index[team]; ok {
			return
		}
		item := &tally{team: team}
		index[team] = item
		seeded = append(seeded, item)
	}
	for _, item := range groupMatches {
		seed(item.Team1)
		seed(item.Team2)
	}

	for _, item := range groupMatches {
		s1, s2, ok := item.Scores()
		if !ok {
			continue
		}
		home := index[item.Team1]
		away := index[item.Team2]

		home.played++
		away.played++
		home.goalsFor += s1
		home.goalsAgainst += s2
		away.goalsFor += s2
		away.goalsAgainst += s1

		switch {
		case s1 > s2:
			home.won++
			away.lost++
			home.points += pointsForWin
		case s1 < s2:
			away.won++
			home.lost++
			away.points += pointsForWin
		default:
			home.drawn++
			away.drawn++
			home.points += pointsForDraw
			away.points += pointsForDraw
		}
	}

	ranked := make([]*tally, len(seeded))
	copy(ranked, seeded)
	names := collate.New(NameLanguage)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.points != b.points {
			return a.points > b.points
		}
		if gdA, gdB := a.goalDifference(), b.goalDifference(); gdA != gdB {
			return gdA > gdB
		}
		if a.goalsFor != b.goalsFor {
			return a.goalsFor > b.goalsFor
		}
		return names.CompareString(a.team, b.team) < 0
	})

	out := make([]Row, 0, len(ranked))
	for idx, item := range ranked {
		out = append(out, Row{
			Position:       idx + 1,
			Team:           item.team,
			Played:         item.played,
			Won:            item.won,
			Drawn:          item.drawn,
			Lost:           item.lost,
			GoalsFor:       item.goalsFor,
			GoalsAgainst:   item.goalsAgainst,
			GoalDifference: item.goalDifference(),
			Points:         item.points,
		})
	}

	return out
}

// Groups lists the distinct group codes present in matches, ascending.
func Groups(matches []match.Match) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range matches {
		if _, ok := seen[item.Group]; ok {
			continue
		}
		seen[item.Group] = struct{}{}
		out = append(out, item.Group)
	}
	sort.Strings(out)
	return out
}
