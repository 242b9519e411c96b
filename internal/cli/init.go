package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/equipments/internal/store"
	"github.com/petar-djukic/equipments/pkg/types"
)

// presetPlayTypes and presetCategories are offered by init --presets.
var presetPlayTypes = []types.PlayTypeInput{
	{Name: "Basketball", Icon: "basketball.fill"},
	{Name: "Hiking", Icon: "figure.hiking"},
	{Name: "Camping", Icon: "tent.fill"},
	{Name: "Skiing", Icon: "figure.skiing.downhill"},
	{Name: "Photography", Icon: "camera.fill"},
	{Name: "Gaming", Icon: "gamecontroller.fill"},
}

var presetCategories = []types.CategoryInput{
	{Name: "Apparel", Icon: "tshirt.fill"},
	{Name: "Footwear", Icon: "shoe.fill"},
	{Name: "Bags", Icon: "backpack.fill"},
	{Name: "Electronics", Icon: "bolt.fill"},
	{Name: "Accessories", Icon: types.DefaultCategoryIcon},
}

func (a *app) newInitCmd() *cobra.Command {
	var presets bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: "Init writes a default config.yaml, creates the data and image directories\n" +
			"and opens the configured backend. With --presets it also adds common play\n" +
			"types and categories when those collections are empty.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, presets)
		},
	}
	cmd.Flags().BoolVar(&presets, "presets", false, "seed preset play types and categories")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, presets bool) error {
	return a.withSession(func(s *session) error {
		if presets {
			n, err := seedPresets(s.store)
			if err != nil {
				return fmt.Errorf("seed presets: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d preset record(s)\n", n)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Equipments initialized in %s\n", s.settings.dataDir)
		return nil
	})
}

// seedPresets creates the preset play types and categories. Each collection is
// seeded only when it is empty, so running init twice adds nothing.
func seedPresets(s *store.Store) (int, error) {
	var n int
	if len(s.PlayTypes()) == 0 {
		for _, in := range presetPlayTypes {
			if _, err := s.CreatePlayType(in); err != nil {
				return n, err
			}
			n++
		}
	}
	if len(s.Categories()) == 0 {
		for _, in := range presetCategories {
			if _, err := s.CreateCategory(in); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
