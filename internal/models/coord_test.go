package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoordUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		want  float64
	}{
		{"number", `6.5244`, true, 6.5244},
		{"negative number", `-121.8866`, true, -121.8866},
		{"numeric string", `"3.3792"`, true, 3.3792},
		{"padded string", `" 3.3792 "`, true, 3.3792},
		{"null", `null`, false, 0},
		{"empty string", `""`, false, 0},
		{"garbage string", `"north-ish"`, false, 0},
		{"boolean", `true`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Coord
			if err := json.Unmarshal([]byte(tt.input), &c); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.input, err)
			}
			if c.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v", c.Valid, tt.valid)
			}
			if tt.valid && c.Float64 != tt.want {
				t.Errorf("Float64 = %v, want %v", c.Float64, tt.want)
			}
		})
	}
}

func TestCoordInsideDocumentDoesNotFailDecode(t *testing.T) {
	body := `[{"id":1,"location":"A","latitude":"abc","longitude":3.1},{"id":2,"location":"B","latitude":6.1,"longitude":3.2}]`

	var bins []Bin
	if err := json.Unmarshal([]byte(body), &bins); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(bins) != 2 {
		t.Fatalf("got %d bins, want 2", len(bins))
	}
	if bins[0].HasCoordinates() {
		t.Error("bin 1 should not have usable coordinates")
	}
	if !bins[1].HasCoordinates() {
		t.Error("bin 2 should have usable coordinates")
	}
}

func TestCoordMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Bin{ID: 3, Location: "Yaba", Latitude: NewCoord(6.5), Longitude: Coord{}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":3,"location":"Yaba","latitude":6.5,"longitude":null}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestNewCoordRejectsNonFinite(t *testing.T) {
	if NewCoord(math.NaN()).Valid {
		t.Error("NaN should not be valid")
	}
	if NewCoord(math.Inf(1)).Valid {
		t.Error("+Inf should not be valid")
	}
}

func TestCoordScan(t *testing.T) {
	var c Coord
	if err := c.Scan([]byte("6.25")); err != nil || !c.Valid || c.Float64 != 6.25 {
		t.Errorf("Scan([]byte) = %+v, %v", c, err)
	}
	if err := c.Scan(nil); err != nil || c.Valid {
		t.Errorf("Scan(nil) = %+v, %v", c, err)
	}
	if err := c.Scan(struct{}{}); err == nil {
		t.Error("Scan(struct{}) should fail")
	}
}

func TestCoordString(t *testing.T) {
	if got := NewCoord(6.5244).String(); got != "6.5244" {
		t.Errorf("String() = %q", got)
	}
	if got := (Coord{}).String(); got != "-" {
		t.Errorf("unset String() = %q", got)
	}
}
