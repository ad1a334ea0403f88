package web

import (
	"context"
	"errors"
	"testing"
)

func TestParseSubmission(t *testing.T) {
	tests := []struct {
		name     string
		location string
		lat      string
		lng      string
		wantErr  string
	}{
		{"valid", "  Oke-Ira Market ", "6.6018", "3.3515", ""},
		{"blank location", "   ", "6.6", "3.3", msgLocationRequired},
		{"missing latitude", "Yaba", "", "3.3", msgCoordinatesRequired},
		{"garbage longitude", "Yaba", "6.6", "east", msgCoordinatesRequired},
		{"nan", "Yaba", "NaN", "3.3", msgCoordinatesRequired},
		{"infinite", "Yaba", "6.6", "+Inf", msgCoordinatesRequired},
		{"location checked first", "", "", "", msgLocationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ParseSubmission(tt.location, tt.lat, tt.lng)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if sub.Location != "Oke-Ira Market" || sub.Latitude != 6.6018 || sub.Longitude != 3.3515 {
					t.Errorf("submission = %+v", sub)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Message != tt.wantErr {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantErr)
			}
		})
	}
}

func TestSubmitReportPropagatesBinID(t *testing.T) {
	api := newFakeAPI()
	api.nextBinID = 42

	report, err := SubmitReport(context.Background(), api, Submission{Location: "Yaba", Latitude: 6.5, Longitude: 3.4})
	if err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}
	if report.BinID != 42 || report.Status != "full" {
		t.Errorf("report = %+v", report)
	}
	if len(api.createdFor) != 1 || api.createdFor[0] != 42 {
		t.Errorf("CreateReport called with %v", api.createdFor)
	}
}

func TestSubmitReportStopsOnBinFailure(t *testing.T) {
	api := newFakeAPI()
	api.ensureErr = errors.New("backend down")

	if _, err := SubmitReport(context.Background(), api, Submission{Location: "Yaba"}); err == nil {
		t.Fatal("expected error")
	}
	if len(api.createdFor) != 0 {
		t.Error("CreateReport must not run when EnsureBin fails")
	}
}
