package match

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// VARAllowance is the number of video reviews each team may request per match.
const VARAllowance = 2

// Match represents one fixture row after normalization.
type Match struct {
	Group         string
	Round         string
	Date          string
	Time          string
	Team1         string
	Team2         string
	Score1        string
	Score2        string
	Referee1      string
	Referee2      string
	Commentator   string
	PlayerOfMatch string
	GoalsTeam1    string
	GoalsTeam2    string
	MatchCode     string
	VARTeam1      int
	VARTeam2      int
}

// IsPlayed reports whether both scores are present and numeric.
// Any number counts, including negative or fractional values.
func IsPlayed(m Match) bool {
	_, _, ok := m.Scores()
	return ok
}

// Scores returns both parsed scores, and false when the match is still pending.
func (m Match) Scores() (float64, float64, bool) {
	s1, ok := parseScore(m.Score1)
	if !ok {
		return 0, 0, false
	}
	s2, ok := parseScore(m.Score2)
	if !ok {
		return 0, 0, false
	}
	return s1, s2, true
}

// KickoffKey is the opaque date/time sort key. It is compared as a plain string.
func (m Match) KickoffKey() string {
	return strings.TrimSpace(m.Date + " " + m.Time)
}

// ScoreLine renders "s1 - s2" for played matches and an empty string otherwise.
func ScoreLine(m Match) string {
	if !IsPlayed(m) {
		return ""
	}
	return m.Score1 + " - " + m.Score2
}

// Referees joins the non-empty referee names with " / ".
func Referees(m Match) string {
	names := make([]string, 0, 2)
	for _, name := range []string{m.Referee1, m.Referee2} {
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, " / ")
}

// Score cells follow the numeric-literal grammar of a spreadsheet export:
//
//	decimal  = [+-] ( digits [ "." [ digits ] ] | "." digits ) [ ("e"|"E") [+-] digits ]
//	integer  = "0x" hexdigits | "0o" octdigits | "0b" bindigits   (unsigned, any case)
//
// Surrounding Unicode whitespace is ignored. Words such as "Infinity" or "NaN",
// digit separators and hex floats are not numbers. A literal that overflows to
// an infinite value is treated as pending, so every played score is finite.
var (
	decimalScorePattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)
	prefixedScorePattern = regexp.MustCompile(`^0([xXoObB])([0-9a-fA-F]+)$`)
)

func parseScore(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}

	var out float64
	if decimalScorePattern.MatchString(value) {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		out = parsed
	} else if groups := prefixedScorePattern.FindStringSubmatch(value); groups != nil {
		parsed, ok := parsePrefixedInteger(groups[1], groups[2])
		if !ok {
			return 0, false
		}
		out = parsed
	} else {
		return 0, false
	}

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func parsePrefixedInteger(prefix, digits string) (float64, bool) {
	base := 16
	switch strings.ToLower(prefix) {
	case "o":
		base = 8
	case "b":
		base = 2
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	out, _ := new(big.Float).SetInt(n).Float64()
	return out, true
}
