package types

// Statistics summarizes the inventory.
type Statistics struct {
	TotalValue     int64 `json:"totalValue"` // Sum of equipment prices, minor units.
	EquipmentCount int   `json:"equipmentCount"`
	PlayTypeCount  int   `json:"playTypeCount"`
	CategoryCount  int   `json:"categoryCount"`
}

// AverageEquipmentPerPlayType returns the mean number of equipment items per
// play type, or 0 when there are no play types.
func (s Statistics) AverageEquipmentPerPlayType() float64 {
	if s.PlayTypeCount == 0 {
		return 0
	}
	return float64(s.EquipmentCount) / float64(s.PlayTypeCount)
}

// AverageEquipmentPerCategory returns the mean number of equipment items per
// category, or 0 when there are no categories.
func (s Statistics) AverageEquipmentPerCategory() float64 {
	if s.CategoryCount == 0 {
		return 0
	}
	return float64(s.EquipmentCount) / float64(s.CategoryCount)
}

// AverageEquipmentValue returns the mean price in minor units, truncated, or 0
// when there is no equipment.
func (s Statistics) AverageEquipmentValue() int64 {
	if s.EquipmentCount == 0 {
		return 0
	}
	return s.TotalValue / int64(s.EquipmentCount)
}
