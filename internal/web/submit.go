package web

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"dumptrac/internal/models"
)

const (
	msgLocationRequired    = "Location description is required."
	msgCoordinatesRequired = "Coordinates are required. Click 'Use My Location'."
	msgSubmitted           = "Report submitted. Thank you!"
)

// ValidationError is a form problem caught before any request is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submission is a validated report form.
type Submission struct {
	Location  string
	Latitude  float64
	Longitude float64
}

// ParseSubmission validates raw form values. The location must be non-blank
// after trimming and both coordinates must be finite numbers.
func ParseSubmission(location, lat, lng string) (Submission, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Submission{}, &ValidationError{Message: msgLocationRequired}
	}

	latitude, ok := parseFinite(lat)
	if !ok {
		return Submission{}, &ValidationError{Message: msgCoordinatesRequired}
	}
	longitude, ok := parseFinite(lng)
	if !ok {
		return Submission{}, &ValidationError{Message: msgCoordinatesRequired}
	}

	return Submission{Location: location, Latitude: latitude, Longitude: longitude}, nil
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ReportAPI is the write side of the backend used by the report form.
type ReportAPI interface {
	EnsureBin(ctx context.Context, location string, lat, lng float64) (models.Bin, error)
	CreateReport(ctx context.Context, binID int64, status string) (models.Report, error)
}

// SubmitReport ensures the bin exists and files a "full" report against it.
// The two calls are sequential; a failed report leaves the bin in place.
func SubmitReport(ctx context.Context, api ReportAPI, s Submission) (models.Report, error) {
	bin, err := api.EnsureBin(ctx, s.Location, s.Latitude, s.Longitude)
	if err != nil {
		return models.Report{}, fmt.Errorf("ensure bin: %w", err)
	}

	report, err := api.CreateReport(ctx, bin.ID, models.StatusFull)
	if err != nil {
		return models.Report{}, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}
