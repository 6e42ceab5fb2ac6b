// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"fmt"
	"time"
)

// NoTimestamp is the LastMessageAt value of a room with no recorded
// last message.
const NoTimestamp int64 = -1

// timestampLayout documents the only accepted format. Parsing is done by
// position, not with time.Parse, so that no other ISO-8601 variant is
// accepted.
const timestampLayout = "YYYY-MM-DDTHH:MM:SS.fffZ"

// ParseTimestamp converts a server timestamp of the exact form
// YYYY-MM-DDTHH:MM:SS.fffZ into UTC epoch seconds. Fractional seconds
// are validated as digits and then discarded. Any deviation from the
// format, or an out-of-range field, returns a [*TimestampError].
func ParseTimestamp(s string) (int64, error) {
	if len(s) != len(timestampLayout) {
		return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("expected %d bytes, got %d", len(timestampLayout), len(s))}
	}

	for index := 0; index < len(timestampLayout); index++ {
		switch want := timestampLayout[index]; want {
		case 'Y', 'M', 'D', 'H', 'S', 'f':
			if s[index] < '0' || s[index] > '9' {
				return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("expected digit at offset %d", index)}
			}
		default:
			if s[index] != want {
				return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("expected %q at offset %d", want, index)}
			}
		}
	}

	year := digits(s[0:4])
	month := digits(s[5:7])
	day := digits(s[8:10])
	hour := digits(s[11:13])
	minute := digits(s[14:16])
	second := digits(s[17:19])

	if month < 1 || month > 12 {
		return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("month %d out of range", month)}
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("day %d out of range for %04d-%02d", day, year, month)}
	}
	if hour > 23 {
		return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("hour %d out of range", hour)}
	}
	if minute > 59 {
		return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("minute %d out of range", minute)}
	}
	if second > 59 {
		return 0, &TimestampError{Input: s, Reason: fmt.Sprintf("second %d out of range", second)}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC).Unix(), nil
}

// ParseOptionalTimestamp is [ParseTimestamp] for a field that may be
// absent. A nil input returns [NoTimestamp].
func ParseOptionalTimestamp(s *string) (int64, error) {
	if s == nil {
		return NoTimestamp, nil
	}
	return ParseTimestamp(*s)
}

// digits converts a run of ASCII digits already validated by the caller.
func digits(s string) int {
	value := 0
	for index := 0; index < len(s); index++ {
		value = value*10 + int(s[index]-'0')
	}
	return value
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
