package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/equipments/pkg/types"
)

func (a *app) newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage equipment categories",
	}
	cmd.AddCommand(
		a.newCategoryAddCmd(),
		a.newCategoryListCmd(),
		a.newCategoryGetCmd(),
		a.newCategoryUpdateCmd(),
		a.newCategoryDeleteCmd(),
	)
	return cmd
}

func (a *app) newCategoryAddCmd() *cobra.Command {
	var in types.CategoryInput
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Example: `  equipments category add Footwear --icon shoe.fill
  equipments category add Bags`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return a.withSession(func(s *session) error {
				c, err := s.store.CreateCategory(in)
				if err != nil && c.ID == "" {
					return fmt.Errorf("create category: %w", err)
				}
				if werr := a.writeCategory(cmd, c); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&in.Description, "description", "", "free-text description")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "icon name (default "+types.DefaultCategoryIcon+")")
	return cmd
}

func (a *app) newCategoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in creation order",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				return writeCategories(cmd.OutOrStdout(), a.flags.jsonMode, s.store.Categories())
			})
		},
	}
}

func (a *app) newCategoryGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one category",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				c, ok := s.store.Category(args[0])
				if !ok {
					return fmt.Errorf("category %q: %w", args[0], types.ErrNotFound)
				}
				return a.writeCategory(cmd, c)
			})
		},
	}
}

func (a *app) newCategoryUpdateCmd() *cobra.Command {
	var name, description, icon string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the name, description or icon of a category",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				c, ok := s.store.Category(args[0])
				if !ok {
					return fmt.Errorf("category %q: %w", args[0], types.ErrNotFound)
				}
				flags := cmd.Flags()
				if flags.Changed("name") {
					c.Name = name
				}
				if flags.Changed("description") {
					c.Description = description
				}
				if flags.Changed("icon") {
					c.Icon = icon
				}
				updated, err := s.store.UpdateCategory(c)
				if err != nil && updated.ID == "" {
					return fmt.Errorf("update category: %w", err)
				}
				if werr := a.writeCategory(cmd, updated); werr != nil {
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

func (a *app) newCategoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category; equipment using it keeps no category",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if _, ok := s.store.Category(args[0]); !ok {
					return fmt.Errorf("category %q: %w", args[0], types.ErrNotFound)
				}
				if err := s.store.DeleteCategory(args[0]); err != nil {
					return fmt.Errorf("delete category: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) writeCategory(cmd *cobra.Command, c types.Category) error {
	return writeRecord(cmd.OutOrStdout(), a.flags.jsonMode, c,
		c.ID, c.Name, c.Description, c.Icon, c.CreatedAt, c.UpdatedAt)
}
