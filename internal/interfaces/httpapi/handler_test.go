package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"github.com/riskibarqy/cup-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/usecase"
)

const handlerSheet = "group,round,date,time,team1,team2,score1,score2,referee1,referee2,goals_team1,goals_team2,match_code,var_team1,var_team2\n" +
	"A,الجولة الأولى,2025-01-01,18:00,Alpha,Beta,2,1,Ref One,Ref Two,\"Ali 23; Sara 45\",Omar 12',M1,1,x\n" +
	"A,الجولة الأولى,2025-01-02,18:00,Gamma,Delta,,,,,,,M2,,\n" +
	"b,الجولة الأولى,2025-01-03,18:00,Eta,Theta,0,0,,,,,M3,,\n" +
	"A,الجولة الثانية,2025-01-08,18:00,Alpha,Gamma,1,1,,,,,M4,2,0\n"

type sheetSource struct {
	body string
	err  error
}

func (s sheetSource) Fetch(context.Context) (string, error) {
	return s.body, s.err
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(src usecase.MatchSource) http.Handler {
	service := usecase.NewTournamentService(src, func(matches []match.Match) match.Repository {
		return memory.NewMatchRepository(matches)
	}, logging.NewNop())

	return NewRouter(NewHandler(service, logging.NewNop()), logging.NewNop(), RouterConfig{
		SwaggerEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
	})
}

func doGet[T any](t *testing.T, router http.Handler, target string, wantStatus int) envelope[T] {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d body=%s", target, wantStatus, rec.Code, rec.Body.String())
	}

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("GET %s: unmarshal body: %v", target, err)
	}
	if out.APIVersion != googleAPIVersion {
		t.Fatalf("GET %s: unexpected apiVersion %q", target, out.APIVersion)
	}
	return out
}

func TestHandler_StandingsDefaultsToGroupA(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	got := doGet[groupStandingsDTO](t, router, "/v1/standings", http.StatusOK)
	if got.Data.Group != "A" || len(got.Data.Rows) != 4 {
		t.Fatalf("unexpected standings: %+v", got.Data)
	}
	first := got.Data.Rows[0]
	if first.Team != "Alpha" || first.Position != 1 || first.Points != 4 || first.GoalDifference != 1 {
		t.Fatalf("unexpected leader: %+v", first)
	}

	byQuery := doGet[groupStandingsDTO](t, router, "/v1/standings?g=b", http.StatusOK)
	if byQuery.Data.Group != "B" || len(byQuery.Data.Rows) != 2 {
		t.Fatalf("unexpected group B standings: %+v", byQuery.Data)
	}
}

func TestHandler_GroupStandingsByPath(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	got := doGet[groupStandingsDTO](t, router, "/v1/groups/a/standings", http.StatusOK)
	if got.Data.Group != "A" {
		t.Fatalf("expected upper-cased group, got %q", got.Data.Group)
	}

	unknown := doGet[groupStandingsDTO](t, router, "/v1/groups/Z/standings", http.StatusOK)
	if len(unknown.Data.Rows) != 0 {
		t.Fatalf("unknown group must yield an empty table, got %+v", unknown.Data.Rows)
	}
}

func TestHandler_ListAllStandingsAndGroups(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	all := doGet[[]groupStandingsDTO](t, router, "/v1/groups/standings", http.StatusOK)
	if len(all.Data) != 2 || all.Data[0].Group != "A" || all.Data[1].Group != "B" {
		t.Fatalf("unexpected all standings: %+v", all.Data)
	}

	groups := doGet[[]groupSummaryDTO](t, router, "/v1/groups", http.StatusOK)
	if len(groups.Data) != 2 {
		t.Fatalf("unexpected groups: %+v", groups.Data)
	}
	if groups.Data[0] != (groupSummaryDTO{Group: "A", Matches: 3, Played: 2, Pending: 1}) {
		t.Fatalf("unexpected group A summary: %+v", groups.Data[0])
	}
}

func TestHandler_GroupRounds(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	got := doGet[groupRoundsDTO](t, router, "/v1/groups/A/rounds", http.StatusOK)
	if len(got.Data.Rounds) != 2 {
		t.Fatalf("unexpected rounds: %+v", got.Data.Rounds)
	}
	if got.Data.Rounds[0].Label != "الجولة الأولى" || len(got.Data.Rounds[0].Matches) != 2 {
		t.Fatalf("unexpected first round: %+v", got.Data.Rounds[0])
	}
}

func TestHandler_LatestMatches(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	got := doGet[matchListDTO](t, router, "/v1/matches?limit=1", http.StatusOK)
	if got.Data.TotalItems != 4 || got.Data.ItemCount != 1 || got.Data.Items[0].MatchCode != "M4" {
		t.Fatalf("unexpected latest matches: %+v", got.Data)
	}
	if got.Data.Items[0].VAR != (varUsageDTO{Team1: 2, Team2: 0, Allowance: 2}) {
		t.Fatalf("unexpected VAR usage: %+v", got.Data.Items[0].VAR)
	}

	defaults := doGet[matchListDTO](t, router, "/v1/matches", http.StatusOK)
	if len(defaults.Data.Items) != 4 {
		t.Fatalf("expected every match within the default limit, got %d", len(defaults.Data.Items))
	}

	for _, target := range []string{"/v1/matches?limit=0", "/v1/matches?limit=101", "/v1/matches?limit=ten", "/v1/matches?all=maybe"} {
		bad := doGet[any](t, router, target, http.StatusBadRequest)
		if bad.Error == nil || bad.Error.Status != "INVALID_ARGUMENT" {
			t.Fatalf("GET %s: unexpected error body %+v", target, bad.Error)
		}
	}
}

func TestHandler_ListAllMatchesBeyondLimit(t *testing.T) {
	var sheet strings.Builder
	sheet.WriteString("group,round,date,time,team1,team2,score1,score2,match_code\n")
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&sheet, "A,R1,2025-01-01,%03d,Home%d,Away%d,1,0,M%d\n", i, i, i, i)
	}
	router := newTestRouter(sheetSource{body: sheet.String()})

	got := doGet[matchListDTO](t, router, "/v1/matches?all=true&limit=5", http.StatusOK)
	if got.Data.TotalItems != 150 || got.Data.ItemCount != 150 || len(got.Data.Items) != 150 {
		t.Fatalf("expected all 150 matches, got total=%d count=%d", got.Data.TotalItems, got.Data.ItemCount)
	}
	if got.Data.Items[0].MatchCode != "M0" || got.Data.Items[149].MatchCode != "M149" {
		t.Fatalf("expected sheet order, got first=%s last=%s", got.Data.Items[0].MatchCode, got.Data.Items[149].MatchCode)
	}

	capped := doGet[matchListDTO](t, router, "/v1/matches?all=false&limit=100", http.StatusOK)
	if capped.Data.TotalItems != 150 || capped.Data.ItemCount != 100 {
		t.Fatalf("unexpected capped page: total=%d count=%d", capped.Data.TotalItems, capped.Data.ItemCount)
	}
}

func TestHandler_MatchDetail(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	played := doGet[matchDetailDTO](t, router, "/v1/matches/M1", http.StatusOK)
	if !played.Data.Played || played.Data.ScoreLine != "2 - 1" {
		t.Fatalf("unexpected played detail: %+v", played.Data)
	}
	if played.Data.Referees != "Ref One / Ref Two" {
		t.Fatalf("unexpected referees: %q", played.Data.Referees)
	}
	if len(played.Data.GoalsTeam1) != 2 || played.Data.GoalsTeam1[1] != "Sara (45')" {
		t.Fatalf("unexpected goals: %+v", played.Data.GoalsTeam1)
	}
	if played.Data.VAR.Team1 != 1 || played.Data.VAR.Team2 != 0 {
		t.Fatalf("unexpected VAR usage: %+v", played.Data.VAR)
	}

	pending := doGet[matchDetailDTO](t, router, "/v1/matches/M2", http.StatusOK)
	if pending.Data.Played || pending.Data.ScoreLine != pendingMarker {
		t.Fatalf("unexpected pending detail: %+v", pending.Data)
	}

	missing := doGet[any](t, router, "/v1/matches/nope", http.StatusNotFound)
	if missing.Error == nil || missing.Error.Status != "NOT_FOUND" {
		t.Fatalf("unexpected error body: %+v", missing.Error)
	}
}

func TestHandler_SourceFailureMapsTo503(t *testing.T) {
	router := newTestRouter(sheetSource{err: errors.New("dial tcp: refused")})

	got := doGet[any](t, router, "/v1/groups", http.StatusServiceUnavailable)
	if got.Error == nil || got.Error.Status != "UNAVAILABLE" {
		t.Fatalf("unexpected error body: %+v", got.Error)
	}
}

func TestHandler_SystemRoutes(t *testing.T) {
	router := newTestRouter(sheetSource{body: handlerSheet})

	health := doGet[map[string]string](t, router, "/healthz", http.StatusOK)
	if health.Data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", health.Data)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("expected openapi document, got status=%d len=%d", rec.Code, rec.Body.Len())
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := recoverPanic(logging.NewNop(), panicking)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/groups", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
