// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/rocketdesk/rocketchat"
)

// writeTitle writes a bold section title. Styling is dropped
// automatically when w is not a color terminal.
func writeTitle(w io.Writer, format string, args ...any) {
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	fmt.Fprintln(w, style.Render(fmt.Sprintf(format, args...)))
}

// formatTimestamp renders epoch seconds as RFC 3339 UTC, or "-" for
// NoTimestamp.
func formatTimestamp(epochSeconds int64) string {
	if epochSeconds == rocketchat.NoTimestamp {
		return "-"
	}
	return time.Unix(epochSeconds, 0).UTC().Format(time.RFC3339)
}

func writeChannelTable(w io.Writer, title string, channels []rocketchat.Channel) {
	writeTitle(w, "%s (%d)", title, len(channels))
	if len(channels) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tMESSAGES\tLAST MESSAGE")
	for _, channel := range channels {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			channel.Name, channel.ID, channel.NumMessages, formatTimestamp(channel.LastMessageAt))
	}
	tw.Flush()
}

func writeDirectRoomTable(w io.Writer, rooms []rocketchat.DirectRoom) {
	writeTitle(w, "Direct messages (%d)", len(rooms))
	if len(rooms) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANTS\tID\tMESSAGES\tLAST MESSAGE")
	for _, room := range rooms {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			strings.Join(room.Usernames, ", "), room.ID, room.NumMessages, formatTimestamp(room.LastMessageAt))
	}
	tw.Flush()
}
