package dashboard

import (
	"sync"
	"time"

	"dumptrac/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	markerClassFull = "marker-red"
	markerClassDone = "marker-green"
)

// Marker is a single point on the dashboard map.
type Marker struct {
	ReportID int64
	Position orb.Point // lng, lat
	Status   string
	Done     bool
	Class    string
	IconHTML string
	Tooltip  string
}

// MapView owns the dashboard map settings and its marker layer. The layer is
// created on first use; later initialisation calls are no-ops.
type MapView struct {
	Center      orb.Point
	Zoom        int
	MaxZoom     int
	TileURL     string
	Attribution string

	init    sync.Once
	mu      sync.RWMutex
	markers []Marker
	loc     *time.Location
}

// NewMapView returns a map centred on Lagos with OpenStreetMap tiles.
func NewMapView(loc *time.Location) *MapView {
	if loc == nil {
		loc = time.Local
	}
	return &MapView{
		Center:      orb.Point{3.3792, 6.5244},
		Zoom:        11,
		MaxZoom:     19,
		TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap",
		loc:         loc,
	}
}

// Ensure initialises the marker layer once.
func (m *MapView) Ensure() {
	m.init.Do(func() {
		m.mu.Lock()
		m.markers = []Marker{}
		m.mu.Unlock()
	})
}

// Render clears the layer and adds one marker per report whose bin resolves
// to usable coordinates. Everything else is skipped. The returned slice is the
// layer built from s, independent of later renders.
func (m *MapView) Render(s Snapshot) []Marker {
	m.Ensure()

	markers := make([]Marker, 0, len(s.Reports))
	for _, r := range s.Reports {
		b, ok := s.Bin(r)
		if !ok || !b.HasCoordinates() {
			continue
		}
		markers = append(markers, m.marker(r, b))
	}

	m.mu.Lock()
	m.markers = markers
	m.mu.Unlock()

	out := make([]Marker, len(markers))
	copy(out, markers)
	return out
}

func (m *MapView) marker(r models.Report, b models.Bin) Marker {
	name := b.Location
	if name == "" {
		name = "Unknown"
	}

	mk := Marker{
		ReportID: r.ID,
		Position: orb.Point{b.Longitude.Float64, b.Latitude.Float64},
		Status:   r.Status,
	}

	if r.IsCleared() {
		mk.Done = true
		mk.Class = markerClassDone
		mk.IconHTML = `<div class="marker-green">Done</div>`
		mk.Tooltip = name + " - Done at " + r.ClearedAt.Time.In(m.loc).Format(TimeLayout)
	} else {
		mk.Class = markerClassFull
		mk.IconHTML = `<div class="marker-red"></div>`
		mk.Tooltip = name + " - Bin Full"
	}
	return mk
}

// Markers returns a copy of the current layer.
func (m *MapView) Markers() []Marker {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

// FeatureCollection publishes the layer as GeoJSON points.
func (m *MapView) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, mk := range m.Markers() {
		f := geojson.NewFeature(mk.Position)
		f.Properties["report_id"] = mk.ReportID
		f.Properties["status"] = mk.Status
		f.Properties["done"] = mk.Done
		f.Properties["marker_class"] = mk.Class
		f.Properties["icon_html"] = mk.IconHTML
		f.Properties["tooltip"] = mk.Tooltip
		fc.Append(f)
	}
	return fc
}

// Settings is the map configuration handed to the page script.
type Settings struct {
	Center      [2]float64 `json:"center"` // lat, lng
	Zoom        int        `json:"zoom"`
	MaxZoom     int        `json:"max_zoom"`
	TileURL     string     `json:"tile_url"`
	Attribution string     `json:"attribution"`
}

func (m *MapView) Settings() Settings {
	return Settings{
		Center:      [2]float64{m.Center.Lat(), m.Center.Lon()},
		Zoom:        m.Zoom,
		MaxZoom:     m.MaxZoom,
		TileURL:     m.TileURL,
		Attribution: m.Attribution,
	}
}
