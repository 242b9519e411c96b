package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/petar-djukic/equipments/pkg/types"
)

const dateLayout = "2006-01-02"

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeTable renders rows under header with a tabwriter, trimming the
// trailing padding from each line.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func deref(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

// formatPrice renders minor units with two decimals.
func formatPrice(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

func writePlayTypes(w io.Writer, jsonMode bool, pts []types.PlayType) error {
	if jsonMode {
		return writeJSON(w, pts)
	}
	if len(pts) == 0 {
		_, err := fmt.Fprintln(w, "No play types found.")
		return err
	}
	rows := make([][]string, 0, len(pts))
	for _, pt := range pts {
		rows = append(rows, []string{pt.ID, truncate(pt.Name, 40), pt.Icon, pt.CreatedAt.Format(dateLayout)})
	}
	if err := writeTable(w, []string{"ID", "NAME", "ICON", "CREATED"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d play type(s)\n", len(pts))
	return err
}

func writeCategories(w io.Writer, jsonMode bool, cs []types.Category) error {
	if jsonMode {
		return writeJSON(w, cs)
	}
	if len(cs) == 0 {
		_, err := fmt.Fprintln(w, "No categories found.")
		return err
	}
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{c.ID, truncate(c.Name, 40), c.Icon, c.CreatedAt.Format(dateLayout)})
	}
	if err := writeTable(w, []string{"ID", "NAME", "ICON", "CREATED"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d category(ies)\n", len(cs))
	return err
}

func writeEquipmentList(w io.Writer, jsonMode bool, es []types.Equipment) error {
	if jsonMode {
		return writeJSON(w, es)
	}
	if len(es) == 0 {
		_, err := fmt.Fprintln(w, "No equipment found.")
		return err
	}
	rows := make([][]string, 0, len(es))
	for _, e := range es {
		rows = append(rows, []string{
			e.ID,
			truncate(e.Name, 40),
			truncate(e.Brand, 20),
			formatPrice(e.Price),
			fmt.Sprintf("%d/%d", e.Rating, types.MaxRating),
			fmt.Sprintf("%d", len(e.Images)),
		})
	}
	if err := writeTable(w, []string{"ID", "NAME", "BRAND", "PRICE", "RATING", "IMAGES"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d item(s)\n", len(es))
	return err
}

func writeEquipment(w io.Writer, jsonMode bool, e types.Equipment) error {
	if jsonMode {
		return writeJSON(w, e)
	}
	rows := [][]string{
		{"ID:", e.ID},
		{"Name:", e.Name},
		{"Brand:", e.Brand},
		{"Model:", e.Model},
		{"Description:", e.Description},
		{"Price:", formatPrice(e.Price)},
		{"Purchased:", formatDate(e.PurchaseDate)},
		{"Play type:", deref(e.PlayTypeID)},
		{"Category:", deref(e.CategoryID)},
		{"Rating:", fmt.Sprintf("%d/%d", e.Rating, types.MaxRating)},
		{"Notes:", e.Notes},
		{"Created:", e.CreatedAt.Format(time.RFC3339)},
		{"Updated:", e.UpdatedAt.Format(time.RFC3339)},
	}
	for i, img := range e.Images {
		rows = append(rows, []string{fmt.Sprintf("Image %d:", i+1), img})
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 1, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeRecord prints a play type or category in detail form.
func writeRecord(w io.Writer, jsonMode bool, v any, id, name, desc, icon string, created, updated time.Time) error {
	if jsonMode {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintf(w, "ID:          %s\nName:        %s\nDescription: %s\nIcon:        %s\nCreated:     %s\nUpdated:     %s\n",
		id, name, desc, icon, created.Format(time.RFC3339), updated.Format(time.RFC3339))
	return err
}
