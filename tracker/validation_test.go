package tracker

import (
	"testing"
	"time"

	"github.com/relabs-tech/energytrack/core/schema"
)

func newValidationBackend(t *testing.T) *Backend {
	t.Helper()
	validator, err := schema.NewValidator([]string{entryRequestSchema}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &Backend{validator: validator}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"utc", "2022-03-15T14:30:00Z", time.Date(2022, 3, 15, 14, 30, 0, 0, time.UTC), false},
		{"offset", "2022-03-15T14:30:00+02:00", time.Date(2022, 3, 15, 12, 30, 0, 0, time.UTC), false},
		{"fraction", "2022-03-15T14:30:00.25Z", time.Date(2022, 3, 15, 14, 30, 0, 250000000, time.UTC), false},
		{"naive", "2022-03-15T14:30:00", time.Date(2022, 3, 15, 14, 30, 0, 0, time.UTC), false},
		{"date only", "2022-03-15", time.Time{}, true},
		{"garbage", "yesterday", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTimestamp(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error for %q", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidateEntryRequest(t *testing.T) {
	b := newValidationBackend(t)

	request, details := b.validateEntryRequest(
		`{"timestamp":"2022-03-15T14:30:00Z","description":"Lunch - sandwich","energy":7}`)
	if len(details) > 0 {
		t.Fatalf("expected a valid request, got %+v", details)
	}
	if !request.Timestamp.Equal(time.Date(2022, 3, 15, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", request.Timestamp)
	}
	if request.Description == nil || *request.Description != "Lunch - sandwich" {
		t.Fatal("expected the description")
	}
	if request.Energy == nil || *request.Energy != 7 {
		t.Fatal("expected energy 7")
	}
}

func TestValidateEntryRequestIgnoresUnknownProperties(t *testing.T) {
	b := newValidationBackend(t)

	_, details := b.validateEntryRequest(
		`{"timestamp":"2022-03-15T14:30:00Z","energy":7,"mood":"great"}`)
	if len(details) > 0 {
		t.Fatalf("expected a valid request, got %+v", details)
	}
}

func TestValidateEntryRequestDetails(t *testing.T) {
	b := newValidationBackend(t)

	cases := []struct {
		name      string
		body      string
		wantField string
		wantType  string
	}{
		{"missing timestamp", `{"energy":5}`, "timestamp", "required"},
		{"illegal timestamp", `{"timestamp":"yesterday","energy":5}`, "timestamp", "format"},
		{"nothing to track", `{"timestamp":"2022-03-15T14:30:00Z"}`, "entry", "required"},
		{"energy out of range", `{"timestamp":"2022-03-15T14:30:00Z","energy":0}`, "energy", "number_gte"},
		{"invalid json", `{"timestamp":`, "(root)", "json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, details := b.validateEntryRequest(tc.body)
			if len(details) == 0 {
				t.Fatal("expected validation details")
			}
			found := false
			for _, d := range details {
				if d.Field == tc.wantField && d.Type == tc.wantType {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a %s detail for field %q, got %+v", tc.wantType, tc.wantField, details)
			}
		})
	}
}
