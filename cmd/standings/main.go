package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cup-standings/internal/app"
	"github.com/riskibarqy/cup-standings/internal/config"
	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"github.com/riskibarqy/cup-standings/internal/domain/round"
	"github.com/riskibarqy/cup-standings/internal/domain/standing"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/platform/tabular"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

type options struct {
	source  string
	group   string
	format  string
	verbose bool
}

type report struct {
	Group     string         `json:"group"`
	Standings []standing.Row `json:"standings"`
	Rounds    []round.Round  `json:"rounds"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.source != "" {
		cfg.MatchesSource = opts.source
	}

	level := logging.LevelWarn
	if opts.verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level, Output: stderr, Console: true})
	defer func() { _ = logger.Sync() }()

	service := app.NewTournamentService(cfg, logger)

	groupReport, err := service.GetGroupReport(ctx, opts.group)
	if err != nil {
		return fmt.Errorf("report for group %s: %w", opts.group, err)
	}

	switch opts.format {
	case formatJSON:
		return writeJSON(stdout, report{Group: groupReport.Group, Standings: groupReport.Standings, Rounds: groupReport.Rounds})
	case formatCSV:
		return writeCSV(stdout, groupReport.Matches)
	default:
		return writeTable(stdout, report{Group: groupReport.Group, Standings: groupReport.Standings, Rounds: groupReport.Rounds})
	}
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("standings", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.source, "source", "", "fixture sheet path or http(s) URL (defaults to MATCHES_SOURCE)")
	fs.StringVar(&opts.group, "group", "A", "group letter")
	fs.StringVar(&opts.format, "format", formatTable, "output format: table, json or csv")
	asJSON := fs.Bool("json", false, "shorthand for -format json")
	fs.BoolVar(&opts.verbose, "v", false, "log fetch details to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *asJSON {
		opts.format = formatJSON
	}
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))
	switch opts.format {
	case formatTable, formatJSON, formatCSV:
	default:
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	}

	opts.group = match.NormalizeGroup(opts.group)
	if opts.group == "" {
		return options{}, fmt.Errorf("group cannot be empty")
	}
	return opts, nil
}

func writeJSON(w io.Writer, out report) error {
	payload, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

// writeCSV prints the group's matches in the fixture sheet layout.
func writeCSV(w io.Writer, matches []match.Match) error {
	records := make([]tabular.Record, 0, len(matches))
	for _, item := range matches {
		records = append(records, match.ToRecord(item))
	}

	encoded, err := tabular.Encode(match.Columns, records)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	_, err = io.WriteString(w, encoded)
	return err
}

func formatGoals(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDifference(v float64) string {
	if v > 0 {
		return "+" + formatGoals(v)
	}
	return formatGoals(v)
}

func writeTable(w io.Writer, out report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Group %s\n", out.Group)
	fmt.Fprintln(tw, "#\tTeam\tP\tW\tD\tL\tGF\tGA\tGD\tPts")
	for _, row := range out.Standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%d\n",
			row.Position, row.Team, row.Played, row.Won, row.Drawn, row.Lost,
			formatGoals(row.GoalsFor), formatGoals(row.GoalsAgainst), formatDifference(row.GoalDifference), row.Points)
	}

	for _, item := range out.Rounds {
		fmt.Fprintf(tw, "\n%s\n", item.Label)
		for _, m := range item.Matches {
			score := match.ScoreLine(m)
			if score == "" {
				score = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", strings.TrimSpace(m.Date+" "+m.Time), m.Team1, score, m.Team2)
		}
	}
	return tw.Flush()
}
