// cubeturn - interactive slice-turn puzzle for the terminal.
package main

import (
	"github.com/SeamusWaldron/cubeturn/internal/cli"
)

func main() {
	cli.Execute()
}
