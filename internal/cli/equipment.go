package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/petar-djukic/equipments/internal/imagestore"
	"github.com/petar-djukic/equipments/pkg/types"
)

// equipmentFlags binds the editable equipment fields to command flags.
type equipmentFlags struct {
	name         string
	brand        string
	model        string
	description  string
	price        int64
	purchaseDate string
	images       []string
	playType     string
	category     string
	notes        string
	rating       int
}

func (f *equipmentFlags) register(fs *pflag.FlagSet, withName bool) {
	if withName {
		fs.StringVar(&f.name, "name", "", "new name")
	}
	fs.StringVar(&f.brand, "brand", "", "brand")
	fs.StringVar(&f.model, "model", "", "model")
	fs.StringVar(&f.description, "description", "", "free-text description")
	fs.Int64Var(&f.price, "price", 0, "price in minor currency units (cents)")
	fs.StringVar(&f.purchaseDate, "purchase-date", "", "purchase date (YYYY-MM-DD; empty clears)")
	fs.StringArrayVar(&f.images, "image", nil, "image file path (repeatable)")
	fs.StringVar(&f.playType, "play-type", "", "play type ID (empty clears)")
	fs.StringVar(&f.category, "category", "", "category ID (empty clears)")
	fs.StringVar(&f.notes, "notes", "", "notes")
	fs.IntVar(&f.rating, "rating", 0, fmt.Sprintf("rating %d-%d", types.MinRating, types.MaxRating))
}

// apply copies every flag the user set onto e.
func (f *equipmentFlags) apply(fs *pflag.FlagSet, e *types.Equipment) error {
	if fs.Changed("name") {
		e.Name = f.name
	}
	if fs.Changed("brand") {
		e.Brand = f.brand
	}
	if fs.Changed("model") {
		e.Model = f.model
	}
	if fs.Changed("description") {
		e.Description = f.description
	}
	if fs.Changed("price") {
		e.Price = f.price
	}
	if fs.Changed("purchase-date") {
		d, err := parseDate(f.purchaseDate)
		if err != nil {
			return err
		}
		e.PurchaseDate = d
	}
	if fs.Changed("image") {
		e.Images = f.images
	}
	if fs.Changed("play-type") {
		e.PlayTypeID = types.StringRef(f.playType)
	}
	if fs.Changed("category") {
		e.CategoryID = types.StringRef(f.category)
	}
	if fs.Changed("notes") {
		e.Notes = f.notes
	}
	if fs.Changed("rating") {
		e.Rating = f.rating
	}
	return nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase date %q: want YYYY-MM-DD", errUsage, s)
	}
	return &d, nil
}

func (a *app) newEquipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"eq"},
		Short:   "Manage equipment items",
	}
	cmd.AddCommand(
		a.newEquipmentAddCmd(),
		a.newEquipmentListCmd(),
		a.newEquipmentGetCmd(),
		a.newEquipmentUpdateCmd(),
		a.newEquipmentDeleteCmd(),
		a.newEquipmentAttachImageCmd(),
		a.newEquipmentImageCmd(),
	)
	return cmd
}

func (a *app) newEquipmentAddCmd() *cobra.Command {
	var f equipmentFlags
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an equipment item",
		Example: `  equipments equipment add "Spalding NBA" --brand Spalding --price 29900 --rating 5
  equipments equipment add Boots --play-type <id> --purchase-date 2025-11-02`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft types.Equipment
			if err := f.apply(cmd.Flags(), &draft); err != nil {
				return err
			}
			in := types.EquipmentInput{
				Name:         args[0],
				Brand:        draft.Brand,
				Model:        draft.Model,
				Description:  draft.Description,
				Price:        draft.Price,
				PurchaseDate: draft.PurchaseDate,
				Images:       draft.Images,
				CategoryID:   draft.CategoryID,
				PlayTypeID:   draft.PlayTypeID,
				Notes:        draft.Notes,
				Rating:       draft.Rating,
			}
			return a.withSession(func(s *session) error {
				e, err := s.store.CreateEquipment(in)
				if err != nil && e.ID == "" {
					return fmt.Errorf("create equipment: %w", err)
				}
				if werr := writeEquipment(cmd.OutOrStdout(), a.flags.jsonMode, e); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	f.register(cmd.Flags(), false)
	return cmd
}

func (a *app) newEquipmentListCmd() *cobra.Command {
	var playType, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment, optionally for one play type or category",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if playType != "" && category != "" {
				return fmt.Errorf("%w: --play-type and --category are mutually exclusive", errUsage)
			}
			return a.withSession(func(s *session) error {
				var items []types.Equipment
				switch {
				case playType != "":
					items = s.store.EquipmentForPlayType(playType)
				case category != "":
					items = s.store.EquipmentForCategory(category)
				default:
					items = s.store.Equipment()
				}
				return writeEquipmentList(cmd.OutOrStdout(), a.flags.jsonMode, items)
			})
		},
	}
	cmd.Flags().StringVar(&playType, "play-type", "", "only equipment referencing this play type ID")
	cmd.Flags().StringVar(&category, "category", "", "only equipment referencing this category ID")
	return cmd
}

func (a *app) newEquipmentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one equipment item",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				e, ok := s.store.EquipmentByID(args[0])
				if !ok {
					return fmt.Errorf("equipment %q: %w", args[0], types.ErrNotFound)
				}
				return writeEquipment(cmd.OutOrStdout(), a.flags.jsonMode, e)
			})
		},
	}
}

func (a *app) newEquipmentUpdateCmd() *cobra.Command {
	var f equipmentFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an equipment item; unset flags keep their value",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				e, ok := s.store.EquipmentByID(args[0])
				if !ok {
					return fmt.Errorf("equipment %q: %w", args[0], types.ErrNotFound)
				}
				if err := f.apply(cmd.Flags(), &e); err != nil {
					return err
				}
				updated, err := s.store.UpdateEquipment(e)
				if err != nil && updated.ID == "" {
					return fmt.Errorf("update equipment: %w", err)
				}
				if werr := writeEquipment(cmd.OutOrStdout(), a.flags.jsonMode, updated); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	f.register(cmd.Flags(), true)
	return cmd
}

func (a *app) newEquipmentDeleteCmd() *cobra.Command {
	var keepImages bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an equipment item and the images stored for it",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				e, ok := s.store.EquipmentByID(args[0])
				if !ok {
					return fmt.Errorf("equipment %q: %w", args[0], types.ErrNotFound)
				}
				if err := s.store.DeleteEquipment(args[0]); err != nil {
					return fmt.Errorf("delete equipment: %w", err)
				}
				if !keepImages {
					inUse := imagesInUse(s.store.Equipment())
					for _, img := range e.Images {
						if inUse[img] {
							continue
						}
						err := s.images.Delete(cmd.Context(), img)
						if err != nil && !errors.Is(err, imagestore.ErrOutsideBase) && !errors.Is(err, imagestore.ErrImageNotFound) {
							s.logger.Warn("delete image", "path", img, "error", err)
						}
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted equipment %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&keepImages, "keep-images", false, "leave image files in the image directory")
	return cmd
}

// imagesInUse returns the set of image paths referenced by items.
func imagesInUse(items []types.Equipment) map[string]bool {
	used := make(map[string]bool)
	for _, e := range items {
		for _, img := range e.Images {
			used[img] = true
		}
	}
	return used
}

func (a *app) newEquipmentImageCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "image <id> <n>",
		Short: "Copy the n-th image (1-based) of an equipment item out of the image directory",
		Example: `  equipments equipment image <id> 1 --output tent.jpg
  equipments equipment image <id> 2 > second.png`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("%w: image number %q: want a positive integer", errUsage, args[1])
			}
			return a.withSession(func(s *session) error {
				e, ok := s.store.EquipmentByID(args[0])
				if !ok {
					return fmt.Errorf("equipment %q: %w", args[0], types.ErrNotFound)
				}
				if n > len(e.Images) {
					return fmt.Errorf("equipment %q has %d image(s), no image %d: %w", args[0], len(e.Images), n, types.ErrNotFound)
				}
				path := e.Images[n-1]

				r, mimeType, err := s.images.Open(cmd.Context(), path)
				switch {
				case errors.Is(err, imagestore.ErrImageNotFound):
					return fmt.Errorf("image %s: %w", path, types.ErrNotFound)
				case errors.Is(err, imagestore.ErrOutsideBase):
					return fmt.Errorf("%w: image %s is not in the image directory", errUsage, path)
				case err != nil:
					return err
				}
				defer r.Close()

				if output == "" {
					_, err = io.Copy(cmd.OutOrStdout(), r)
					return err
				}
				out, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				if _, err := io.Copy(out, r); err != nil {
					out.Close()
					return fmt.Errorf("write %s: %w", output, err)
				}
				if err := out.Close(); err != nil {
					return fmt.Errorf("close %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s)\n", output, mimeType)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func (a *app) newEquipmentAttachImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach-image <id> <file>",
		Short: "Copy an image into the image directory and append it to the equipment",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, src := args[0], args[1]
			return a.withSession(func(s *session) error {
				e, ok := s.store.EquipmentByID(id)
				if !ok {
					return fmt.Errorf("equipment %q: %w", id, types.ErrNotFound)
				}

				f, err := os.Open(src)
				if err != nil {
					return fmt.Errorf("%w: %w", errUsage, err)
				}
				defer f.Close()

				path, err := s.images.Save(cmd.Context(), id, imagestore.MimeTypeForPath(src), f)
				if err != nil {
					return fmt.Errorf("save image: %w", err)
				}

				e.Images = append(e.Images, path)
				updated, err := s.store.UpdateEquipment(e)
				if err != nil && updated.ID == "" {
					if derr := s.images.Delete(cmd.Context(), path); derr != nil {
						s.logger.Warn("remove unattached image", "path", path, "error", derr)
					}
					return fmt.Errorf("attach image: %w", err)
				}
				if werr := writeEquipment(cmd.OutOrStdout(), a.flags.jsonMode, updated); werr != nil {
					return werr
				}
				return err
			})
		},
	}
}
