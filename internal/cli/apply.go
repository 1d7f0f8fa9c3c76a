package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeturn"
	"github.com/SeamusWaldron/cubeturn/internal/facelets"
	"github.com/SeamusWaldron/cubeturn/internal/notation"
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply a move sequence and print the sticker net",
	Long: `Apply a sequence in standard notation (R L U D F B M E S, with ' for
counter-clockwise and 2 for a half turn) to a solved puzzle and print the
resulting sticker net.

Examples:
  cubeturn apply "R U R' U'"
  cubeturn apply --describe "F2 M' U"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var (
	applyDescribe bool
	applyTurns    bool
)

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyDescribe, "describe", false, "Print the moves in plain words")
	applyCmd.Flags().BoolVar(&applyTurns, "turns", false, "Print the quarter turns each move expands to")
}

func runApply(cmd *cobra.Command, args []string) error {
	return applySequence(cmd.OutOrStdout(), strings.Join(args, " "), applyDescribe, applyTurns)
}

func applySequence(out io.Writer, seq string, describe, turns bool) error {
	moves, err := notation.Parse(seq)
	if err != nil {
		return err
	}

	e := cubeturn.New(cubeturn.WithInstantTurns(true))
	if err := e.Apply(moves...); err != nil {
		return err
	}

	fmt.Fprintf(out, "Moves: %s\n", notation.Format(moves))
	if describe {
		fmt.Fprintf(out, "       %s\n", notation.DescribeSequence(moves))
	}
	if turns {
		for _, m := range moves {
			var parts []string
			for _, t := range m.Turns() {
				parts = append(parts, t.String())
			}
			fmt.Fprintf(out, "  %-3s %s\n", m.Notation(), strings.Join(parts, " "))
		}
	}
	fmt.Fprintln(out)

	net := facelets.FromGrid(e.Grid())
	fmt.Fprint(out, net.String())
	fmt.Fprintln(out)
	switch {
	case e.Grid().IsSolved():
		fmt.Fprintln(out, "Solved")
	case net.IsSolved():
		fmt.Fprintln(out, "Solved (puzzle reoriented)")
	default:
		fmt.Fprintln(out, "Not solved")
	}
	return nil
}
