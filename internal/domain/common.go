package domain

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lng float64 `json:"lng" db:"lng"`
}

// Viewport is the recommended display bounds for a place.
type Viewport struct {
	Northeast Point `json:"northeast"`
	Southwest Point `json:"southwest"`
}

// PlusCode is the Open Location Code of a place as reported upstream.
type PlusCode struct {
	CompoundCode string `json:"compound_code,omitempty"`
	GlobalCode   string `json:"global_code,omitempty"`
}
