package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/equipments/pkg/types"
)

func (a *app) newPlayTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "playtype",
		Aliases: []string{"playtypes", "pt"},
		Short:   "Manage play types (activities equipment is used for)",
	}
	cmd.AddCommand(
		a.newPlayTypeAddCmd(),
		a.newPlayTypeListCmd(),
		a.newPlayTypeGetCmd(),
		a.newPlayTypeUpdateCmd(),
		a.newPlayTypeDeleteCmd(),
	)
	return cmd
}

func (a *app) newPlayTypeAddCmd() *cobra.Command {
	var in types.PlayTypeInput
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a play type",
		Example: `  equipments playtype add Basketball --icon basketball.fill
  equipments playtype add Hiking --description "Day hikes and treks"`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return a.withSession(func(s *session) error {
				pt, err := s.store.CreatePlayType(in)
				if err != nil && pt.ID == "" {
					return fmt.Errorf("create play type: %w", err)
				}
				if werr := a.writePlayType(cmd, pt); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&in.Description, "description", "", "free-text description")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "icon name (default "+types.DefaultPlayTypeIcon+")")
	return cmd
}

func (a *app) newPlayTypeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List play types in creation order",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				return writePlayTypes(cmd.OutOrStdout(), a.flags.jsonMode, s.store.PlayTypes())
			})
		},
	}
}

func (a *app) newPlayTypeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one play type",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				pt, ok := s.store.PlayType(args[0])
				if !ok {
					return fmt.Errorf("play type %q: %w", args[0], types.ErrNotFound)
				}
				return a.writePlayType(cmd, pt)
			})
		},
	}
}

func (a *app) newPlayTypeUpdateCmd() *cobra.Command {
	var name, description, icon string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the name, description or icon of a play type",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				pt, ok := s.store.PlayType(args[0])
				if !ok {
					return fmt.Errorf("play type %q: %w", args[0], types.ErrNotFound)
				}
				flags := cmd.Flags()
				if flags.Changed("name") {
					pt.Name = name
				}
				if flags.Changed("description") {
					pt.Description = description
				}
				if flags.Changed("icon") {
					pt.Icon = icon
				}
				updated, err := s.store.UpdatePlayType(pt)
				if err != nil && updated.ID == "" {
					return fmt.Errorf("update play type: %w", err)
				}
				if werr := a.writePlayType(cmd, updated); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon name")
	return cmd
}

func (a *app) newPlayTypeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a play type; equipment using it keeps no play type",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if _, ok := s.store.PlayType(args[0]); !ok {
					return fmt.Errorf("play type %q: %w", args[0], types.ErrNotFound)
				}
				if err := s.store.DeletePlayType(args[0]); err != nil {
					return fmt.Errorf("delete play type: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted play type %s\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) writePlayType(cmd *cobra.Command, pt types.PlayType) error {
	return writeRecord(cmd.OutOrStdout(), a.flags.jsonMode, pt,
		pt.ID, pt.Name, pt.Description, pt.Icon, pt.CreatedAt, pt.UpdatedAt)
}
