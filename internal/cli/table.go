package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeturn/internal/gesture"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the gesture resolution table",
	Long: `Print, for every clicked face axis and dominant drag direction, the
rotation axis and the sign rule the gesture resolver applies.

The turn sign is sign(normal) * sign(drag) * parity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printTable(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}

func printTable(out io.Writer) {
	fmt.Fprintln(out, "face  dragged  axis  parity  flip")
	for _, e := range gesture.Table() {
		flip := ""
		if e.ExtraFlip {
			flip = "yes"
		}
		fmt.Fprintf(out, "%-4s  %-7s  %-4s  %+6d  %s\n", e.Face, e.Dragged, e.Axis, e.Parity, flip)
	}
}
