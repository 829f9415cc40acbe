package memory

import (
	"context"

	"github.com/riskibarqy/cup-standings/internal/domain/match"
)

// MatchRepository indexes one normalized match list by group. It is never
// mutated after construction, so concurrent reads need no locking.
type MatchRepository struct {
	items   []match.Match
	byGroup map[string][]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make([]match.Match, len(matches))
	copy(items, matches)

	byGroup := make(map[string][]match.Match)
	for _, item := range items {
		byGroup[item.Group] = append(byGroup[item.Group], item)
	}

	return &MatchRepository{
		items:   items,
		byGroup: byGroup,
	}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	out := make([]match.Match, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MatchRepository) ListByGroup(_ context.Context, group string) ([]match.Match, error) {
	items := r.byGroup[match.NormalizeGroup(group)]
	out := make([]match.Match, 0, len(items))
	out = append(out, items...)
	return out, nil
}

// GetByCode resolves duplicated codes to the earliest row, as match.FindByCode does.
func (r *MatchRepository) GetByCode(_ context.Context, code string) (match.Match, bool, error) {
	item, ok := match.FindByCode(r.items, code)
	return item, ok, nil
}
