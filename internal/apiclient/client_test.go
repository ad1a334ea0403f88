package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBaseURLForHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"localhost:5500", LocalBaseURL},
		{"127.0.0.1:5500", LocalBaseURL},
		{"app.localhost", LocalBaseURL},
		{"dumptrac-hml5.vercel.app", DeployedBaseURL},
		{"", DeployedBaseURL},
	}

	for _, tt := range tests {
		if got := BaseURLForHost(tt.host); got != tt.want {
			t.Errorf("BaseURLForHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestEnsureBinSendsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bins" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID missing")
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["location"] != "Oke-Ira Market" || body["latitude"] != 6.5244 || body["longitude"] != 3.3792 {
			t.Errorf("body = %v", body)
		}

		fmt.Fprint(w, `{"id":12,"location":"Oke-Ira Market","latitude":6.5244,"longitude":3.3792}`)
	}))
	defer server.Close()

	c := New(server.URL+"/api", server.Client())
	bin, err := c.EnsureBin(context.Background(), "Oke-Ira Market", 6.5244, 3.3792)
	if err != nil {
		t.Fatalf("EnsureBin: %v", err)
	}
	if bin.ID != 12 {
		t.Errorf("bin.ID = %d", bin.ID)
	}
}

func TestGetRequestsCarryNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if len(data) != 0 {
			t.Errorf("GET carried body %q", data)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		fmt.Fprint(w, `[{"id":1,"bin_id":4,"status":"full","created_at":"2025-09-29T10:00:00Z","cleared_at":null}]`)
	}))
	defer server.Close()

	reports, err := New(server.URL, server.Client()).ListReports(context.Background())
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 1 || reports[0].BinID != 4 || reports[0].ClearedAt.Valid {
		t.Errorf("reports = %+v", reports)
	}
}

func TestClearReportPath(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		fmt.Fprint(w, `{"id":7,"bin_id":1,"status":"done","created_at":"2025-09-29T10:00:00Z","cleared_at":"2025-09-30T08:00:00Z"}`)
	}))
	defer server.Close()

	report, err := New(server.URL+"/api/", server.Client()).ClearReport(context.Background(), 7)
	if err != nil {
		t.Fatalf("ClearReport: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/reports/7/clear" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if !report.IsCleared() {
		t.Errorf("report = %+v", report)
	}
}

func TestErrorCarriesResponseText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail":"Bin not found"}`)
	}))
	defer server.Close()

	_, err := New(server.URL, server.Client()).CreateReport(context.Background(), 99, "full")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != `{"detail":"Bin not found"}` {
		t.Errorf("err = %q", err.Error())
	}
	if StatusCode(err) != http.StatusNotFound {
		t.Errorf("StatusCode = %d", StatusCode(err))
	}
}

func TestErrorWithEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, server.Client()).ListBins(context.Background())
	if err == nil || err.Error() != "Request failed: 502" {
		t.Fatalf("err = %v", err)
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url, nil).ListBins(context.Background())
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	if StatusCode(err) != 0 {
		t.Errorf("StatusCode = %d, want 0", StatusCode(err))
	}
}

func TestListReportsAcceptsOffsetlessTimestamps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":2,"bin_id":1,"status":"done","created_at":"2025-09-30T07:59:00.5","cleared_at":"2025-09-30T08:00:00.123456"},
			{"id":1,"bin_id":1,"status":"full","created_at":"2025-09-29T10:00:00Z","cleared_at":null}
		]`)
	}))
	defer server.Close()

	reports, err := New(server.URL, server.Client()).ListReports(context.Background())
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if !reports[0].IsCleared() || reports[0].ClearedAt.Time.Hour() != 8 {
		t.Errorf("report 2 = %+v", reports[0])
	}
	if !reports[0].CreatedAt.Valid || reports[1].IsCleared() {
		t.Errorf("reports = %+v", reports)
	}
}
