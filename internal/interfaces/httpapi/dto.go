package httpapi

import (
	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"github.com/riskibarqy/cup-standings/internal/domain/round"
	"github.com/riskibarqy/cup-standings/internal/domain/standing"
	"github.com/riskibarqy/cup-standings/internal/usecase"
)

// pendingMarker stands in for empty display values such as the score of an unplayed match.
const pendingMarker = "—"

type varUsageDTO struct {
	Team1     int `json:"team1"`
	Team2     int `json:"team2"`
	Allowance int `json:"allowance"`
}

type matchDTO struct {
	MatchCode     string      `json:"match_code"`
	Group         string      `json:"group"`
	Round         string      `json:"round"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	Team1         string      `json:"team1"`
	Team2         string      `json:"team2"`
	Score1        string      `json:"score1"`
	Score2        string      `json:"score2"`
	ScoreLine     string      `json:"score_line"`
	Played        bool        `json:"played"`
	Referee1      string      `json:"referee1"`
	Referee2      string      `json:"referee2"`
	Referees      string      `json:"referees"`
	Commentator   string      `json:"commentator"`
	PlayerOfMatch string      `json:"player_of_match"`
	VAR           varUsageDTO `json:"var"`
}

type matchListDTO struct {
	TotalItems int        `json:"total_items"`
	ItemCount  int        `json:"item_count"`
	Items      []matchDTO `json:"items"`
}

type matchDetailDTO struct {
	matchDTO
	GoalsTeam1 []string `json:"goals_team1"`
	GoalsTeam2 []string `json:"goals_team2"`
}

type standingRowDTO struct {
	Position       int     `json:"position"`
	Team           string  `json:"team"`
	Played         int     `json:"played"`
	Won            int     `json:"won"`
	Drawn          int     `json:"drawn"`
	Lost           int     `json:"lost"`
	GoalsFor       float64 `json:"goals_for"`
	GoalsAgainst   float64 `json:"goals_against"`
	GoalDifference float64 `json:"goal_difference"`
	Points         int     `json:"points"`
}

type groupStandingsDTO struct {
	Group string           `json:"group"`
	Rows  []standingRowDTO `json:"rows"`
}

type roundDTO struct {
	Label   string     `json:"label"`
	Matches []matchDTO `json:"matches"`
}

type groupRoundsDTO struct {
	Group  string     `json:"group"`
	Rounds []roundDTO `json:"rounds"`
}

type groupSummaryDTO struct {
	Group   string `json:"group"`
	Matches int    `json:"matches"`
	Played  int    `json:"played"`
	Pending int    `json:"pending"`
}

func matchToDTO(m match.Match) matchDTO {
	scoreLine := match.ScoreLine(m)
	if scoreLine == "" {
		scoreLine = pendingMarker
	}

	return matchDTO{
		MatchCode:     m.MatchCode,
		Group:         m.Group,
		Round:         m.Round,
		Date:          m.Date,
		Time:          m.Time,
		Team1:         m.Team1,
		Team2:         m.Team2,
		Score1:        m.Score1,
		Score2:        m.Score2,
		ScoreLine:     scoreLine,
		Played:        match.IsPlayed(m),
		Referee1:      m.Referee1,
		Referee2:      m.Referee2,
		Referees:      match.Referees(m),
		Commentator:   m.Commentator,
		PlayerOfMatch: m.PlayerOfMatch,
		VAR: varUsageDTO{
			Team1:     m.VARTeam1,
			Team2:     m.VARTeam2,
			Allowance: match.VARAllowance,
		},
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func matchPageToDTO(page usecase.MatchPage) matchListDTO {
	items := matchesToDTO(page.Items)
	return matchListDTO{
		TotalItems: page.Total,
		ItemCount:  len(items),
		Items:      items,
	}
}

func matchDetailToDTO(detail usecase.MatchDetail) matchDetailDTO {
	base := matchToDTO(detail.Match)
	if detail.ScoreLine != "" {
		base.ScoreLine = detail.ScoreLine
	}
	base.Played = detail.Played
	base.Referees = detail.Referees

	return matchDetailDTO{
		matchDTO:   base,
		GoalsTeam1: detail.GoalsTeam1,
		GoalsTeam2: detail.GoalsTeam2,
	}
}

func standingRowsToDTO(rows []standing.Row) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
			Position:       row.Position,
			Team:           row.Team,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

func roundsToDTO(rounds []round.Round) []roundDTO {
	out := make([]roundDTO, 0, len(rounds))
	for _, item := range rounds {
		out = append(out, roundDTO{
			Label:   item.Label,
			Matches: matchesToDTO(item.Matches),
		})
	}
	return out
}

func groupSummariesToDTO(items []usecase.GroupSummary) []groupSummaryDTO {
	out := make([]groupSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, groupSummaryDTO{
			Group:   item.Group,
			Matches: item.Matches,
			Played:  item.Played,
			Pending: item.Matches - item.Played,
		})
	}
	return out
}
