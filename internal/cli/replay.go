package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeturn"
	"github.com/SeamusWaldron/cubeturn/internal/analysis"
	"github.com/SeamusWaldron/cubeturn/internal/facelets"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/recorder"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

var replayCmd = &cobra.Command{
	Use:   "replay [log-file]",
	Short: "Check a recorded turn log against a fresh puzzle",
	Long: `Re-run the committed turns of a turn log on a fresh puzzle and report
whether the log is consistent: every committed turn must have been started,
and every turn must apply cleanly.

If no log file is specified, lists available log files.

Usage:
  cubeturn replay                    # List available logs
  cubeturn replay <log-file>         # Replay specific log
  cubeturn replay last               # Replay the most recent play session`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := logDir(cfg)
	out := cmd.OutOrStdout()

	// If no args, list available logs
	if len(args) == 0 {
		return listLogs(out, dir)
	}

	log, path, err := openLog(dir, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Loaded log: %s\n", path)
	fmt.Fprintf(out, "Session: %s\n", log.SessionID)
	fmt.Fprintf(out, "Created: %s\n", log.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Events: %d\n", len(log.Events))
	fmt.Fprintln(out)

	return replayLog(out, log)
}

// openLog resolves name against dir unless it is a path of its own. The
// name "last" picks the log of the most recent play session.
func openLog(dir, name string) (*turnlog.Log, string, error) {
	path := name
	if name == "last" {
		sf, err := recorder.NewStateFile(recorder.StatePath(dir))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read state: %w", err)
		}
		if path = sf.LastLogPath(); path == "" {
			return nil, "", fmt.Errorf("no previous session recorded in %s", dir)
		}
	}
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(dir, name)
		}
	}
	log, err := turnlog.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load log: %w", err)
	}
	return log, path, nil
}

// replayLog checks the log and prints the resulting net.
func replayLog(out io.Writer, log *turnlog.Log) error {
	started := make(map[string]bool)
	for i, ev := range log.Events {
		if ev.Turn == nil {
			continue
		}
		switch ev.EventType {
		case turnlog.EventTurnStart:
			started[ev.Turn.ID] = true
		case turnlog.EventTurnCommit:
			if !started[ev.Turn.ID] {
				return fmt.Errorf("event %d: turn %s committed without a start", i, ev.Turn.ID)
			}
		}
	}

	e := cubeturn.New(cubeturn.WithInstantTurns(true))
	turns := log.CommittedTurns()
	moves := make([]notation.Move, 0, len(turns))
	for _, t := range turns {
		ok, err := e.Turn(t)
		if err != nil {
			return fmt.Errorf("turn %s: %w", t.ID, err)
		}
		if !ok {
			return fmt.Errorf("turn %s was refused", t.ID)
		}
		if m, ok := notation.FromTurn(t); ok {
			moves = append(moves, m)
		}
	}

	sum := analysis.Summarize(log)
	fmt.Fprintf(out, "Gestures: %d (%d cancelled)\n", sum.Gestures, sum.CancelledGestures)
	fmt.Fprintf(out, "Committed turns: %d\n", len(turns))
	if sum.AbortedTurns > 0 {
		fmt.Fprintf(out, "Aborted turns: %d\n", sum.AbortedTurns)
	}
	if len(moves) > 0 {
		fmt.Fprintf(out, "Moves: %s\n", notation.Format(moves))
		fmt.Fprintf(out, "Optimized: %s (%.0f%%)\n", notation.Format(analysis.OptimizeMoves(moves)), sum.Efficiency*100)
	}
	if sum.DurationMs > 0 {
		fmt.Fprintf(out, "Duration: %s, %.2f TPS, longest pause %s\n",
			time.Duration(sum.DurationMs)*time.Millisecond, sum.TPSOverall,
			time.Duration(sum.LongestPauseMs)*time.Millisecond)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, facelets.FromGrid(e.Grid()).String())
	return nil
}

func listLogs(out io.Writer, logDir string) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No log files found. Play a session first with: cubeturn play")
			return nil
		}
		return err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			logs = append(logs, e.Name())
		}
	}

	if len(logs) == 0 {
		fmt.Fprintln(out, "No log files found. Play a session first with: cubeturn play")
		return nil
	}

	// Sort by name (which includes timestamp, so newest last)
	sort.Strings(logs)

	fmt.Fprintln(out, "Available log files:")
	fmt.Fprintln(out)
	for _, log := range logs {
		fmt.Fprintf(out, "  %s\n", log)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: cubeturn replay <filename>")

	return nil
}
