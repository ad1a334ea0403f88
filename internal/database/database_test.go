package database

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db.example.com/bins", "postgres://u:p@db.example.com/bins?sslmode=require"},
		{"postgres://u:p@db.example.com/bins?connect_timeout=5", "postgres://u:p@db.example.com/bins?connect_timeout=5&sslmode=require"},
		{"postgres://u:p@localhost/bins?sslmode=disable", "postgres://u:p@localhost/bins?sslmode=disable"},
		{"  postgres://u@h/d?sslmode=verify-full  ", "postgres://u@h/d?sslmode=verify-full"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
