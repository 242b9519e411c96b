package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsView is the JSON shape of the stats command.
type statsView struct {
	TotalValue                  int64   `json:"totalValue"`
	EquipmentCount              int     `json:"equipmentCount"`
	PlayTypeCount               int     `json:"playTypeCount"`
	CategoryCount               int     `json:"categoryCount"`
	AverageEquipmentPerPlayType float64 `json:"averageEquipmentPerPlayType"`
	AverageEquipmentPerCategory float64 `json:"averageEquipmentPerCategory"`
	AverageEquipmentValue       int64   `json:"averageEquipmentValue"`
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory counts and value",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				st := s.store.Statistics()
				view := statsView{
					TotalValue:                  st.TotalValue,
					EquipmentCount:              st.EquipmentCount,
					PlayTypeCount:               st.PlayTypeCount,
					CategoryCount:               st.CategoryCount,
					AverageEquipmentPerPlayType: st.AverageEquipmentPerPlayType(),
					AverageEquipmentPerCategory: st.AverageEquipmentPerCategory(),
					AverageEquipmentValue:       st.AverageEquipmentValue(),
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), view)
				}
				return writeTable(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, [][]string{
					{"Equipment", fmt.Sprint(view.EquipmentCount)},
					{"Play types", fmt.Sprint(view.PlayTypeCount)},
					{"Categories", fmt.Sprint(view.CategoryCount)},
					{"Total value", formatPrice(view.TotalValue)},
					{"Average value", formatPrice(view.AverageEquipmentValue)},
					{"Per play type", fmt.Sprintf("%.1f", view.AverageEquipmentPerPlayType)},
					{"Per category", fmt.Sprintf("%.1f", view.AverageEquipmentPerCategory)},
				})
			})
		},
	}
}
