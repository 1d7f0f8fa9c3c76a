package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeturn/internal/analysis"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
	"github.com/SeamusWaldron/cubeturn/internal/turnlog"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <log-file>",
	Short: "Export the committed moves of a turn log",
	Long: `Export the committed turns of a turn log in text or JSON format.

Examples:
  cubeturn export turns_20240101_120000.jsonl
  cubeturn export turns_20240101_120000.jsonl --format json -o moves.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, _, err := openLog(logDir(cfg), args[0])
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return exportMoves(out, log, exportFormat)
}

// exportedMove is one committed turn in JSON output.
type exportedMove struct {
	ID       string `json:"id"`
	Notation string `json:"notation,omitempty"`
	Axis     string `json:"axis"`
	Layer    int8   `json:"layer"`
	Sign     int8   `json:"sign"`
}

func exportMoves(out io.Writer, log *turnlog.Log, format string) error {
	turns := log.CommittedTurns()

	switch format {
	case "json":
		moves := make([]exportedMove, len(turns))
		for i, t := range turns {
			moves[i] = exportedMove{ID: t.ID, Axis: t.Axis.String(), Layer: t.Layer, Sign: t.Sign}
			if m, ok := notation.FromTurn(t); ok {
				moves[i].Notation = m.Notation()
			}
		}
		data, err := json.MarshalIndent(struct {
			SessionID string                   `json:"session_id"`
			Moves     []exportedMove           `json:"moves"`
			Summary   *analysis.SessionSummary `json:"summary"`
		}{log.SessionID, moves, analysis.Summarize(log)}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err

	case "txt":
		moves := make([]notation.Move, 0, len(turns))
		for _, t := range turns {
			if m, ok := notation.FromTurn(t); ok {
				moves = append(moves, m)
			}
		}
		_, err := fmt.Fprintln(out, notation.Format(moves))
		return err
	}

	return fmt.Errorf("unknown format %q (use txt or json)", format)
}
