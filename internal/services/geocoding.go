package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrGeocodingDisabled is returned when no API key is configured.
var ErrGeocodingDisabled = errors.New("geocoding is not configured")

// GeocodingService turns coordinates into a readable address using the Google
// Maps Geocoding API
type GeocodingService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Coordinates represents latitude and longitude
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address represents a full address
type Address struct {
	FormattedAddress string      `json:"formatted_address"`
	Coordinates      Coordinates `json:"coordinates"`
}

// GoogleGeocodeResponse represents the Google Maps Geocoding API response
type GoogleGeocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewGeocodingService creates a geocoding service. An empty key yields a
// service whose calls fail with ErrGeocodingDisabled.
func NewGeocodingService(apiKey string, client *http.Client) *GeocodingService {
	if client == nil {
		client = &http.Client{}
	}
	return &GeocodingService{
		apiKey:  apiKey,
		baseURL: googleGeocodeURL,
		client:  client,
	}
}

// WithBaseURL points the service at another endpoint (tests, proxies).
func (s *GeocodingService) WithBaseURL(baseURL string) *GeocodingService {
	s.baseURL = baseURL
	return s
}

func (s *GeocodingService) Enabled() bool {
	return s.apiKey != ""
}

// ReverseGeocode converts coordinates to an address
func (s *GeocodingService) ReverseGeocode(ctx context.Context, lat, lng float64) (*Address, error) {
	if !s.Enabled() {
		return nil, ErrGeocodingDisabled
	}

	params := url.Values{}
	params.Add("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Add("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	var result GoogleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Status != "OK" {
		return nil, fmt.Errorf("geocoding API returned status: %s", result.Status)
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("no results found")
	}

	return &Address{
		FormattedAddress: result.Results[0].FormattedAddress,
		Coordinates:      Coordinates{Lat: lat, Lng: lng},
	}, nil
}
