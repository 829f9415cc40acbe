package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cup-standings/internal/platform/tabular"
)

const cliSheet = "group,round,date,time,team1,team2,score1,score2,match_code\n" +
	"A,الجولة الأولى,2025-01-01,18:00,Alpha,Beta,2,0,M1\n" +
	"A,الجولة الأولى,2025-01-02,18:00,Gamma,Delta,,,M2\n" +
	"B,الجولة الأولى,2025-01-03,18:00,Eta,Theta,1,1,M3\n"

func writeSheet(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := os.WriteFile(path, []byte(cliSheet), 0o600); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return path
}

func TestRun_PrintsTable(t *testing.T) {
	path := writeSheet(t)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-source", path, "-group", "a"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr=%s)", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"Group A", "Alpha", "+2", "الجولة الأولى", "2 - 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Eta") {
		t.Fatalf("group B team leaked into group A output:\n%s", out)
	}
}

func TestRun_PrintsJSON(t *testing.T) {
	path := writeSheet(t)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-source", path, "-group", "B", "-json"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	var got report
	if err := sonic.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if got.Group != "B" || len(got.Standings) != 2 || len(got.Rounds) != 1 {
		t.Fatalf("unexpected report: %+v", got)
	}
	if got.Standings[0].Points != 1 || got.Standings[1].Points != 1 {
		t.Fatalf("expected a shared draw, got %+v", got.Standings)
	}
}

func TestRun_FormatJSONMatchesShorthand(t *testing.T) {
	path := writeSheet(t)

	var viaFlag, viaShorthand bytes.Buffer
	if err := run(context.Background(), []string{"-source", path, "-group", "B", "-format", "json"}, &viaFlag, &bytes.Buffer{}); err != nil {
		t.Fatalf("run -format json: %v", err)
	}
	if err := run(context.Background(), []string{"-source", path, "-group", "B", "-json"}, &viaShorthand, &bytes.Buffer{}); err != nil {
		t.Fatalf("run -json: %v", err)
	}
	if viaFlag.String() != viaShorthand.String() {
		t.Fatalf("-format json and -json disagree:\n%s\n%s", viaFlag.String(), viaShorthand.String())
	}
}

func TestRun_PrintsCSV(t *testing.T) {
	path := writeSheet(t)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-source", path, "-group", "A", "-format", "csv"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	records := tabular.Parse(stdout.String())
	if len(records) != 2 {
		t.Fatalf("expected the 2 group A matches, got %d:\n%s", len(records), stdout.String())
	}
	if records[0].Get("match_code") != "M1" || records[0].Get("score1") != "2" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Get("team1") != "Gamma" || records[1].Get("score1") != "" {
		t.Fatalf("unexpected pending record: %+v", records[1])
	}
}

func TestRun_FractionalGoalsInTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fractional.csv")
	sheet := "group,team1,team2,score1,score2\nA,Alpha,Beta,1.5,0\n"
	if err := os.WriteFile(path, []byte(sheet), 0o600); err != nil {
		t.Fatalf("write sheet: %v", err)
	}

	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-source", path}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "+1.5") || !strings.Contains(stdout.String(), "-1.5") {
		t.Fatalf("expected fractional goal difference in table:\n%s", stdout.String())
	}
}

func TestRun_MissingSourceFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-source", missing}, &stdout, &stderr); err == nil {
		t.Fatalf("expected an error for a missing sheet")
	}
}

func TestParseOptions_RejectsBlankGroup(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseOptions([]string{"-group", "  "}, &stderr); err == nil {
		t.Fatalf("expected blank group to be rejected")
	}
}

func TestParseOptions_RejectsUnknownFormat(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseOptions([]string{"-format", "xml"}, &stderr); err == nil {
		t.Fatalf("expected unknown format to be rejected")
	}
}
