package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/equipments/pkg/types"
)

func (a *app) newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every record as a versioned JSON bundle",
		Example: `  equipments export > backup.json
  equipments export --output backup.json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				bundle := s.store.Export()
				if output == "" {
					return types.EncodeBundle(cmd.OutOrStdout(), bundle)
				}
				if err := writeBundleFile(output, bundle); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d play type(s), %d category(ies), %d item(s) to %s\n",
					len(bundle.PlayTypes), len(bundle.Categories), len(bundle.Equipments), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// writeBundleFile encodes b to a temp file next to path and renames it into
// place so a failed export never truncates an existing backup.
func writeBundleFile(path string, b types.Bundle) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.json")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := types.EncodeBundle(tmp, b); err != nil {
		tmp.Close()
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename export file: %w", err)
	}
	return nil
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all records with the contents of an exported bundle",
		Long: "Import reads a bundle written by export and replaces every play type,\n" +
			"category and equipment item. Only bundles of format version " + types.BundleVersion + "\n" +
			"are accepted; anything else leaves the data untouched.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}
			defer f.Close()

			bundle, err := types.DecodeBundle(f)
			if err != nil {
				return fmt.Errorf("%w: decode %s: %w", errUsage, args[0], err)
			}

			return a.withSession(func(s *session) error {
				if err := s.store.Import(bundle); err != nil {
					return fmt.Errorf("import: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d play type(s), %d category(ies), %d item(s)\n",
					len(bundle.PlayTypes), len(bundle.Categories), len(bundle.Equipments))
				return nil
			})
		},
	}
}
