package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/equipments/pkg/types"
)

// Version is the equipments release version.
const Version = "0.1.0"

const modulePath = "github.com/petar-djukic/equipments"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the equipments version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "equipments v%s\nformat: %s\nmodule: %s\n", Version, types.BundleVersion, modulePath)
			return nil
		},
	}
}
