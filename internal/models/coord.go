package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coord is a latitude or longitude as it travels between backend and client.
// Older deployments stored coordinates as text, so JSON numbers and numeric
// strings are both accepted. Null, blanks and garbage decode as an unset value
// instead of failing the surrounding document.
type Coord struct {
	Float64 float64
	Valid   bool
}

func NewCoord(v float64) Coord {
	return Coord{Float64: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Float64)
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	*c = Coord{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}

	*c = parseCoord(raw)
	return nil
}

// Scan implements sql.Scanner.
func (c *Coord) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = Coord{}
	case float64:
		*c = NewCoord(v)
	case float32:
		*c = NewCoord(float64(v))
	case int64:
		*c = NewCoord(float64(v))
	case []byte:
		*c = parseCoord(string(v))
	case string:
		*c = parseCoord(v)
	default:
		return fmt.Errorf("cannot scan %T into Coord", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (c Coord) Value() (driver.Value, error) {
	if !c.Valid {
		return nil, nil
	}
	return c.Float64, nil
}

// String renders the coordinate for display, "-" when unset.
func (c Coord) String() string {
	if !c.Valid {
		return "-"
	}
	return strconv.FormatFloat(c.Float64, 'f', -1, 64)
}

func parseCoord(raw string) Coord {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Coord{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Coord{}
	}
	return NewCoord(v)
}
