// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2022-05-17T14:55:23.276Z", time.Date(2022, 5, 17, 14, 55, 23, 0, time.UTC)},
		{"1970-01-01T00:00:00.000Z", time.Unix(0, 0)},
		{"2024-02-29T23:59:59.999Z", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)},
		{"1969-12-31T23:59:59.000Z", time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC)},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseTimestamp(test.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) failed: %v", test.input, err)
			}
			if got != test.want.Unix() {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", test.input, got, test.want.Unix())
			}
		})
	}
}

func TestParseTimestamp_KnownValue(t *testing.T) {
	got, err := ParseTimestamp("2022-05-17T14:55:23.276Z")
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if got != 1652799323 {
		t.Errorf("got %d, want 1652799323", got)
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no fraction", "2022-05-17T14:55:23Z"},
		{"six fraction digits", "2022-05-17T14:55:23.276000Z"},
		{"offset instead of Z", "2022-05-17T14:55:23.276+00"},
		{"space separator", "2022-05-17 14:55:23.276Z"},
		{"lowercase z", "2022-05-17T14:55:23.276z"},
		{"letter in year", "20x2-05-17T14:55:23.276Z"},
		{"letter in fraction", "2022-05-17T14:55:23.2a6Z"},
		{"month zero", "2022-00-17T14:55:23.276Z"},
		{"month thirteen", "2022-13-17T14:55:23.276Z"},
		{"day zero", "2022-05-00T14:55:23.276Z"},
		{"february 30", "2022-02-30T14:55:23.276Z"},
		{"february 29 non-leap", "2023-02-29T14:55:23.276Z"},
		{"april 31", "2022-04-31T14:55:23.276Z"},
		{"hour 24", "2022-05-17T24:00:00.000Z"},
		{"minute 60", "2022-05-17T14:60:23.276Z"},
		{"leap second", "2022-05-17T14:55:60.276Z"},
		{"sign in month", "2022-+5-17T14:55:23.276Z"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseTimestamp(test.input)
			if err == nil {
				t.Fatalf("ParseTimestamp(%q) succeeded, want error", test.input)
			}
			if !errors.Is(err, ErrMalformedTimestamp) {
				t.Errorf("error %v does not wrap ErrMalformedTimestamp", err)
			}
			var timestampErr *TimestampError
			if !errors.As(err, &timestampErr) {
				t.Fatalf("error %T is not a *TimestampError", err)
			}
			if timestampErr.Input != test.input {
				t.Errorf("TimestampError.Input = %q, want %q", timestampErr.Input, test.input)
			}
		})
	}
}

func TestParseOptionalTimestamp(t *testing.T) {
	got, err := ParseOptionalTimestamp(nil)
	if err != nil {
		t.Fatalf("ParseOptionalTimestamp(nil) failed: %v", err)
	}
	if got != NoTimestamp {
		t.Errorf("ParseOptionalTimestamp(nil) = %d, want -1", got)
	}

	value := "2022-05-17T14:55:23.276Z"
	got, err = ParseOptionalTimestamp(&value)
	if err != nil {
		t.Fatalf("ParseOptionalTimestamp failed: %v", err)
	}
	if got != 1652799323 {
		t.Errorf("got %d, want 1652799323", got)
	}

	bad := "yesterday"
	if _, err := ParseOptionalTimestamp(&bad); !errors.Is(err, ErrMalformedTimestamp) {
		t.Errorf("expected ErrMalformedTimestamp, got %v", err)
	}
}
