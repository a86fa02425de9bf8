package models

const (
	TableStatusAvailable = "Available"
	TableStatusOccupied  = "Occupied"
	TableStatusReserved  = "Reserved"
	TableStatusDirty     = "Dirty"
)

func IsValidTableStatus(status string) bool {
	switch status {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusDirty:
		return true
	}
	return false
}

// Item is a sellable menu entry priced against the profile's price list.
type Item struct {
	ItemCode     string  `json:"item_code" db:"item_code"`
	ItemName     string  `json:"item_name" db:"item_name"`
	Image        *string `json:"image" db:"image"`
	StandardRate float64 `json:"standard_rate" db:"standard_rate"`
}

type RestaurantTable struct {
	Name    string `json:"name" db:"name"`
	Status  string `json:"status" db:"status"`
	Company string `json:"-" db:"company"`
}

type POSData struct {
	Items           []Item            `json:"items"`
	Tables          []RestaurantTable `json:"tables"`
	ProfileSettings ProfileSettings   `json:"profile_settings"`
}
