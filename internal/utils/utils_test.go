package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestParseDurationEnv(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"10s", 10 * time.Second, true},
		{"5m", 5 * time.Minute, true},
		{"10", 10 * time.Second, true},
		{`"10s"`, 10 * time.Second, true},
		{"'2h'", 2 * time.Hour, true},
		{" 30 ", 30 * time.Second, true},
		{"", 0, false},
		{"soon", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDurationEnv(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseDurationEnv(%q): err = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseDurationEnv(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsPGUniqueViolation(t *testing.T) {
	if !IsPGUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("23505 not recognized")
	}
	if IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation misclassified")
	}
	if IsPGUniqueViolation(errors.New("plain error")) {
		t.Error("plain error misclassified")
	}
}
