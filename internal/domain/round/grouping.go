package round

import (
	"sort"

	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnlabeledRound holds matches whose round label is empty ("matches").
const UnlabeledRound = "مباريات"

// CanonicalOrder lists the known round labels, first round to fourth round.
var CanonicalOrder = []string{
	"الجولة الأولى",
	"الجولة الثانية",
	"الجولة الثالثة",
	"الجولة الرابعة",
}

// Round is one labeled bucket of a group's fixtures.
type Round struct {
	Label   string
	Matches []match.Match
}

// ByGroup buckets the matches of group by round label.
//
// Known labels come first in CanonicalOrder, the rest follow in Arabic collation
// order. Matches inside a bucket are ordered by their date/time key compared as a
// plain string, so inconsistent date formats sort lexicographically.
func ByGroup(matches []match.Match, group string) []Round {
	buckets := make(map[string][]match.Match)
	labels := make([]string, 0)
	for _, item := range match.FilterByGroup(matches, group) {
		label := item.Round
		if label == "" {
			label = UnlabeledRound
		}
		if _, ok := buckets[label]; !ok {
			labels = append(labels, label)
		}
		buckets[label] = append(buckets[label], item)
	}

	names := collate.New(language.Arabic)
	sort.SliceStable(labels, func(i, j int) bool {
		ri, knownI := canonicalRank(labels[i])
		rj, knownJ := canonicalRank(labels[j])
		switch {
		case knownI && knownJ:
			return ri < rj
		case knownI != knownJ:
			return knownI
		default:
			return names.CompareString(labels[i], labels[j]) < 0
		}
	})

	out := make([]Round, 0, len(labels))
	for _, label := range labels {
		items := buckets[label]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].KickoffKey() < items[j].KickoffKey()
		})
		out = append(out, Round{Label: label, Matches: items})
	}

	return out
}

func canonicalRank(label string) (int, bool) {
	for idx, known := range CanonicalOrder {
		if known == label {
			return idx, true
		}
	}
	return 0, false
}
