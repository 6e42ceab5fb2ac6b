// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/rocketdesk/rocketchat"
)

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(rocketchat.NoTimestamp); got != "-" {
		t.Errorf("formatTimestamp(NoTimestamp) = %q, want %q", got, "-")
	}
	if got := formatTimestamp(1652799323); got != "2022-05-17T14:55:23Z" {
		t.Errorf("formatTimestamp(1652799323) = %q, want %q", got, "2022-05-17T14:55:23Z")
	}
}

func TestWriteChannelTable(t *testing.T) {
	var buffer bytes.Buffer
	writeChannelTable(&buffer, "Joined channels", []rocketchat.Channel{
		{ID: "GENERAL", Name: "general", NumMessages: 42, LastMessageAt: 1652799323},
		{ID: "r2", Name: "quiet", NumMessages: 0, LastMessageAt: rocketchat.NoTimestamp},
	})
	output := buffer.String()

	for _, want := range []string{
		"Joined channels (2)",
		"NAME", "LAST MESSAGE",
		"general", "GENERAL", "42", "2022-05-17T14:55:23Z",
		"quiet",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("table missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestWriteChannelTable_Empty(t *testing.T) {
	var buffer bytes.Buffer
	writeChannelTable(&buffer, "Channels", nil)
	if !strings.Contains(buffer.String(), "Channels (0)") || !strings.Contains(buffer.String(), "(none)") {
		t.Errorf("output = %q, want an empty-table marker", buffer.String())
	}
}

func TestWriteDirectRoomTable(t *testing.T) {
	var buffer bytes.Buffer
	writeDirectRoomTable(&buffer, []rocketchat.DirectRoom{
		{ID: "d1", Usernames: []string{"alice", "bob"}, NumMessages: 7, LastMessageAt: rocketchat.NoTimestamp},
	})
	output := buffer.String()

	for _, want := range []string{"Direct messages (1)", "PARTICIPANTS", "alice, bob", "d1", "7", "-"} {
		if !strings.Contains(output, want) {
			t.Errorf("table missing %q\n\nFull output:\n%s", want, output)
		}
	}
}
