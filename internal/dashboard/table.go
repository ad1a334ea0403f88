package dashboard

import (
	"strconv"
	"time"

	"dumptrac/internal/models"
)

const placeholder = "-"

// TimeLayout is how timestamps are shown on the dashboard.
const TimeLayout = "2006-01-02 15:04:05"

// Row is one rendered line of the reports table.
type Row struct {
	ID        int64
	BinID     int64
	Location  string
	Latitude  string
	Longitude string
	Status    string
	CreatedAt string
	// Clearable is false once the report is done.
	Clearable bool
}

// BuildRows renders one row per report, in report order. Fields of a bin that
// cannot be resolved show as "-".
func BuildRows(s Snapshot, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}

	rows := make([]Row, 0, len(s.Reports))
	for _, r := range s.Reports {
		row := Row{
			ID:        r.ID,
			BinID:     r.BinID,
			Location:  placeholder,
			Latitude:  placeholder,
			Longitude: placeholder,
			Status:    r.Status,
			CreatedAt: formatTime(r.CreatedAt, loc),
			Clearable: !r.IsDone(),
		}

		if b, ok := s.Bin(r); ok {
			if b.Location != "" {
				row.Location = b.Location
			}
			row.Latitude = b.Latitude.String()
			row.Longitude = b.Longitude.String()
		}

		rows = append(rows, row)
	}
	return rows
}

// Cells flattens a row for tabular exports.
func (r Row) Cells() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		strconv.FormatInt(r.BinID, 10),
		r.Location,
		r.Latitude,
		r.Longitude,
		r.Status,
		r.CreatedAt,
	}
}

// Headers labels the columns returned by Row.Cells.
var Headers = []string{"ID", "Bin ID", "Location", "Latitude", "Longitude", "Status", "Created"}

func formatTime(t models.Timestamp, loc *time.Location) string {
	if !t.Valid {
		return placeholder
	}
	return t.Time.In(loc).Format(TimeLayout)
}
