// Command equipments manages a local inventory of sports and outdoor
// equipment. See internal/cli for the command tree.
package main

import (
	"os"

	"github.com/petar-djukic/equipments/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
