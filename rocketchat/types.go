// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"encoding/json"
	"slices"
)

// Channel is a named group conversation (public "c" or private "p").
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NumMessages int    `json:"num_messages"`
	// LastMessageAt is in UTC epoch seconds, or NoTimestamp.
	LastMessageAt int64 `json:"last_message_at"`
}

// DirectRoom is a conversation identified by its participants.
type DirectRoom struct {
	ID            string   `json:"id"`
	Usernames     []string `json:"usernames"`
	NumMessages   int      `json:"num_messages"`
	LastMessageAt int64    `json:"last_message_at"`
}

// RoomType classifies a room by the server's single-character "t"
// discriminator.
type RoomType int

const (
	RoomTypeUnknown RoomType = iota
	RoomTypeDirect
	RoomTypeChannel
)

// ClassifyRoomType maps "d" to RoomTypeDirect, "c" and "p" to
// RoomTypeChannel, and everything else to RoomTypeUnknown.
func ClassifyRoomType(discriminator string) RoomType {
	switch discriminator {
	case "d":
		return RoomTypeDirect
	case "c", "p":
		return RoomTypeChannel
	default:
		return RoomTypeUnknown
	}
}

func (t RoomType) String() string {
	switch t {
	case RoomTypeDirect:
		return "direct"
	case RoomTypeChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the fields needed to issue one
// authenticated request.
type Snapshot struct {
	BaseURL   string
	UserID    string
	AuthToken string
}

// LoggedIn reports whether the snapshot carries a user id.
func (s Snapshot) LoggedIn() bool { return s.UserID != "" }

func cloneChannels(channels []Channel) []Channel {
	return slices.Clone(channels)
}

func cloneDirectRooms(rooms []DirectRoom) []DirectRoom {
	if rooms == nil {
		return nil
	}
	cloned := make([]DirectRoom, len(rooms))
	for index, room := range rooms {
		room.Usernames = slices.Clone(room.Usernames)
		cloned[index] = room
	}
	return cloned
}

// Wire types. Pointer fields distinguish absent from zero.

type loginResponse struct {
	failureResponse
	Data *struct {
		UserID    string `json:"userId"`
		AuthToken string `json:"authToken"`
	} `json:"data"`
}

// failureResponse holds the status fields shared by every endpoint:
// {"status":"error","message":"..."} or {"success":false,"error":"..."}.
// The server sends "error" as either a string or a number.
type failureResponse struct {
	Status  string          `json:"status"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (r failureResponse) reason() string {
	if r.Message != "" {
		return r.Message
	}
	if len(r.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(r.Error, &text); err == nil {
		return text
	}
	return string(r.Error)
}

type joinedChannelsResponse struct {
	failureResponse
	Channels []joinedChannelRow `json:"channels"`
}

type joinedChannelRow struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Messages    *int    `json:"msgs"`
	LastMessage *string `json:"lm"`
}

type roomsResponse struct {
	failureResponse
	Update []roomRow `json:"update"`
}

type roomRow struct {
	ID          string   `json:"_id"`
	Type        string   `json:"t"`
	Name        string   `json:"name"`
	Usernames   []string `json:"usernames"`
	Messages    *int     `json:"msgs"`
	LastMessage *string  `json:"lm"`
}
