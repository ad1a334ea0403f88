package models

type Bin struct {
	ID        int64  `json:"id" db:"id"`
	Location  string `json:"location" db:"location"`
	Latitude  Coord  `json:"latitude" db:"latitude"`
	Longitude Coord  `json:"longitude" db:"longitude"`
}

// CreateBinRequest is the request body for POST /api/bins.
// Coordinates are pointers so a missing value can be told apart from zero.
type CreateBinRequest struct {
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HasCoordinates reports whether both latitude and longitude are usable.
func (b Bin) HasCoordinates() bool {
	return b.Latitude.Valid && b.Longitude.Valid
}
