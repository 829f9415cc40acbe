package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cup-standings/internal/domain/goalnote"
	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"github.com/riskibarqy/cup-standings/internal/domain/round"
	"github.com/riskibarqy/cup-standings/internal/domain/standing"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/platform/tabular"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

// MatchSource yields the raw fixture sheet text.
type MatchSource interface {
	Fetch(ctx context.Context) (string, error)
}

// SnapshotFunc indexes one normalized match list for the lifetime of a call.
type SnapshotFunc func(matches []match.Match) match.Repository

// MatchPage is a slice of the match list plus the size of the whole list.
type MatchPage struct {
	Items []match.Match
	Total int
}

// GroupReport bundles the views of one group computed from a single fetch.
type GroupReport struct {
	Group     string
	Matches   []match.Match
	Standings []standing.Row
	Rounds    []round.Round
}

type GroupSummary struct {
	Group   string
	Matches int
	Played  int
}

type GroupStandings struct {
	Group string
	Rows  []standing.Row
}

type MatchDetail struct {
	Match      match.Match
	Played     bool
	ScoreLine  string
	Referees   string
	GoalsTeam1 []string
	GoalsTeam2 []string
}

// TournamentService derives every view from a fresh read of the source. Nothing
// is retained between calls.
type TournamentService struct {
	source   MatchSource
	snapshot SnapshotFunc
	logger   *logging.Logger
}

func NewTournamentService(source MatchSource, snapshot SnapshotFunc, logger *logging.Logger) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{
		source:   source,
		snapshot: snapshot,
		logger:   logger,
	}
}

// ListMatches returns every valid match in sheet order. A failed fetch yields an
// empty list together with ErrDependencyUnavailable.
func (s *TournamentService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListMatches")
	defer span.End()

	items, err := s.loadMatches(ctx)
	if err != nil {
		return []match.Match{}, err
	}

	span.SetAttributes(attribute.Int("matches.count", len(items)))
	return items, nil
}

// ListLatestMatches returns up to limit matches, newest first, with the total
// number of valid matches in the sheet.
func (s *TournamentService) ListLatestMatches(ctx context.Context, limit int) (MatchPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListLatestMatches")
	defer span.End()

	if limit < 1 {
		return MatchPage{Items: []match.Match{}}, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}

	items, err := s.loadMatches(ctx)
	if err != nil {
		return MatchPage{Items: []match.Match{}}, err
	}

	span.SetAttributes(attribute.Int("matches.count", len(items)))
	return MatchPage{Items: match.Latest(items, limit), Total: len(items)}, nil
}

func (s *TournamentService) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListGroups")
	defer span.End()

	items, err := s.loadMatches(ctx)
	if err != nil {
		return nil, err
	}
	repo := s.snapshot(items)

	groups := standing.Groups(items)
	out := make([]GroupSummary, 0, len(groups))
	for _, group := range groups {
		groupMatches, err := repo.ListByGroup(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("list group matches: %w", err)
		}

		summary := GroupSummary{Group: group, Matches: len(groupMatches)}
		for _, item := range groupMatches {
			if match.IsPlayed(item) {
				summary.Played++
			}
		}
		out = append(out, summary)
	}

	return out, nil
}

// GetGroupStandings ranks one group. An unknown group yields an empty table.
func (s *TournamentService) GetGroupStandings(ctx context.Context, group string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetGroupStandings")
	defer span.End()

	group = match.NormalizeGroup(group)
	if group == "" {
		return nil, fmt.Errorf("%w: group is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("group", group))

	items, err := s.loadMatches(ctx)
	if err != nil {
		return nil, err
	}

	groupMatches, err := s.snapshot(items).ListByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list group matches: %w", err)
	}

	return standing.Compute(groupMatches, group), nil
}

func (s *TournamentService) GetGroupRounds(ctx context.Context, group string) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetGroupRounds")
	defer span.End()

	group = match.NormalizeGroup(group)
	if group == "" {
		return nil, fmt.Errorf("%w: group is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("group", group))

	items, err := s.loadMatches(ctx)
	if err != nil {
		return nil, err
	}

	groupMatches, err := s.snapshot(items).ListByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list group matches: %w", err)
	}

	return round.ByGroup(groupMatches, group), nil
}

// GetGroupReport computes the standings and rounds of one group from one read of
// the source, so both views describe the same sheet.
func (s *TournamentService) GetGroupReport(ctx context.Context, group string) (GroupReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetGroupReport")
	defer span.End()

	group = match.NormalizeGroup(group)
	if group == "" {
		return GroupReport{}, fmt.Errorf("%w: group is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("group", group))

	items, err := s.loadMatches(ctx)
	if err != nil {
		return GroupReport{}, err
	}

	groupMatches, err := s.snapshot(items).ListByGroup(ctx, group)
	if err != nil {
		return GroupReport{}, fmt.Errorf("list group matches: %w", err)
	}

	return GroupReport{
		Group:     group,
		Matches:   groupMatches,
		Standings: standing.Compute(groupMatches, group),
		Rounds:    round.ByGroup(groupMatches, group),
	}, nil
}

// ListAllStandings ranks every group, ordered by group code.
func (s *TournamentService) ListAllStandings(ctx context.Context) ([]GroupStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListAllStandings")
	defer span.End()

	items, err := s.loadMatches(ctx)
	if err != nil {
		return nil, err
	}

	groups := standing.Groups(items)
	span.SetAttributes(attribute.Int("groups.count", len(groups)))

	return iter.Map(groups, func(group *string) GroupStandings {
		return GroupStandings{
			Group: *group,
			Rows:  standing.Compute(items, *group),
		}
	}), nil
}

func (s *TournamentService) GetMatchDetail(ctx context.Context, code string) (MatchDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetMatchDetail")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return MatchDetail{}, fmt.Errorf("%w: match code is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("match_code", code))

	items, err := s.loadMatches(ctx)
	if err != nil {
		return MatchDetail{}, err
	}

	item, exists, err := s.snapshot(items).GetByCode(ctx, code)
	if err != nil {
		return MatchDetail{}, fmt.Errorf("get match by code: %w", err)
	}
	if !exists {
		return MatchDetail{}, fmt.Errorf("%w: match=%s", ErrNotFound, code)
	}

	return MatchDetail{
		Match:      item,
		Played:     match.IsPlayed(item),
		ScoreLine:  match.ScoreLine(item),
		Referees:   match.Referees(item),
		GoalsTeam1: goalnote.Parse(item.GoalsTeam1),
		GoalsTeam2: goalnote.Parse(item.GoalsTeam2),
	}, nil
}

func (s *TournamentService) loadMatches(ctx context.Context) ([]match.Match, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch fixture sheet failed", "error", err)
		return nil, fmt.Errorf("%w: fetch fixture sheet: %w", ErrDependencyUnavailable, err)
	}

	items := match.Normalize(tabular.Parse(raw))
	s.logger.DebugContext(ctx, "fixture sheet loaded", "bytes", len(raw), "matches", len(items))
	return items, nil
}
