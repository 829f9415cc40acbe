package match

import (
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/cup-standings/internal/platform/tabular"
)

// Column names of the fixture sheet.
const (
	ColumnGroup         = "group"
	ColumnRound         = "round"
	ColumnDate          = "date"
	ColumnTime          = "time"
	ColumnTeam1         = "team1"
	ColumnTeam2         = "team2"
	ColumnScore1        = "score1"
	ColumnScore2        = "score2"
	ColumnReferee1      = "referee1"
	ColumnReferee2      = "referee2"
	ColumnCommentator   = "commentator"
	ColumnPlayerOfMatch = "player_of_match"
	ColumnGoalsTeam1    = "goals_team1"
	ColumnGoalsTeam2    = "goals_team2"
	ColumnMatchCode     = "match_code"
	ColumnVARTeam1      = "var_team1"
	ColumnVARTeam2      = "var_team2"
)

// Columns lists every known column in sheet order.
var Columns = []string{
	ColumnGroup, ColumnRound, ColumnDate, ColumnTime, ColumnTeam1, ColumnTeam2,
	ColumnScore1, ColumnScore2, ColumnReferee1, ColumnReferee2, ColumnCommentator,
	ColumnPlayerOfMatch, ColumnGoalsTeam1, ColumnGoalsTeam2, ColumnMatchCode,
	ColumnVARTeam1, ColumnVARTeam2,
}

// NormalizeGroup applies the group code case rule shared by rows and queries.
func NormalizeGroup(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// FromRecord reads the known columns of one raw record. Absent columns default to
// an empty string, and VAR counters default to zero.
func FromRecord(rec tabular.Record) Match {
	return Match{
		Group:         NormalizeGroup(rec.Get(ColumnGroup)),
		Round:         rec.Get(ColumnRound),
		Date:          rec.Get(ColumnDate),
		Time:          rec.Get(ColumnTime),
		Team1:         rec.Get(ColumnTeam1),
		Team2:         rec.Get(ColumnTeam2),
		Score1:        rec.Get(ColumnScore1),
		Score2:        rec.Get(ColumnScore2),
		Referee1:      rec.Get(ColumnReferee1),
		Referee2:      rec.Get(ColumnReferee2),
		Commentator:   rec.Get(ColumnCommentator),
		PlayerOfMatch: rec.Get(ColumnPlayerOfMatch),
		GoalsTeam1:    rec.Get(ColumnGoalsTeam1),
		GoalsTeam2:    rec.Get(ColumnGoalsTeam2),
		MatchCode:     rec.Get(ColumnMatchCode),
		VARTeam1:      parseVARCount(rec.Get(ColumnVARTeam1)),
		VARTeam2:      parseVARCount(rec.Get(ColumnVARTeam2)),
	}
}

// ToRecord is the inverse of FromRecord over Columns. VAR counters are written
// as integers.
func ToRecord(m Match) tabular.Record {
	return tabular.Record{
		ColumnGroup:         m.Group,
		ColumnRound:         m.Round,
		ColumnDate:          m.Date,
		ColumnTime:          m.Time,
		ColumnTeam1:         m.Team1,
		ColumnTeam2:         m.Team2,
		ColumnScore1:        m.Score1,
		ColumnScore2:        m.Score2,
		ColumnReferee1:      m.Referee1,
		ColumnReferee2:      m.Referee2,
		ColumnCommentator:   m.Commentator,
		ColumnPlayerOfMatch: m.PlayerOfMatch,
		ColumnGoalsTeam1:    m.GoalsTeam1,
		ColumnGoalsTeam2:    m.GoalsTeam2,
		ColumnMatchCode:     m.MatchCode,
		ColumnVARTeam1:      strconv.Itoa(m.VARTeam1),
		ColumnVARTeam2:      strconv.Itoa(m.VARTeam2),
	}
}

// IsValid reports whether the match names a group and both teams.
func IsValid(m Match) bool {
	return strings.TrimSpace(m.Group) != "" &&
		strings.TrimSpace(m.Team1) != "" &&
		strings.TrimSpace(m.Team2) != ""
}

// Normalize maps raw records to matches and drops the ones failing IsValid.
// Input order is preserved.
func Normalize(records []tabular.Record) []Match {
	out := make([]Match, 0, len(records))
	for _, rec := range records {
		item := FromRecord(rec)
		if !IsValid(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FindByCode returns the first match carrying code. Duplicated codes resolve to
// the earliest row.
func FindByCode(matches []Match, code string) (Match, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Match{}, false
	}
	for _, item := range matches {
		if item.MatchCode == code {
			return item, true
		}
	}
	return Match{}, false
}

// Latest returns up to limit matches ordered by KickoffKey, newest first.
func Latest(matches []Match, limit int) []Match {
	if limit <= 0 {
		return []Match{}
	}

	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].KickoffKey() > sorted[j].KickoffKey()
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// FilterByGroup keeps the matches of one group, in input order.
func FilterByGroup(matches []Match, group string) []Match {
	group = NormalizeGroup(group)
	out := make([]Match, 0, len(matches))
	for _, item := range matches {
		if item.Group == group {
			out = append(out, item)
		}
	}
	return out
}

func parseVARCount(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
