// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// CatalogConfig holds optional settings for a Catalog.
type CatalogConfig struct {
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Catalog fetches room listings and replaces the Store's snapshots.
// Every refresh requires a logged-in Store and decodes the whole
// response before committing, so a failed refresh leaves the previous
// snapshot untouched.
type Catalog struct {
	store  *Store
	client *Client
	logger *slog.Logger
}

// NewCatalog creates a Catalog over store and client.
func NewCatalog(store *Store, client *Client, config CatalogConfig) *Catalog {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{store: store, client: client, logger: logger}
}

// RefreshJoinedChannels replaces the joined-channel snapshot with the
// server's channels.list.joined listing. Every row must carry _id, name,
// and msgs; lm is optional. Returns ErrNotLoggedIn without a request if
// the Store is not logged in.
func (c *Catalog) RefreshJoinedChannels(ctx context.Context) error {
	snapshot, err := c.requireLogin(EndpointChannelsJoined)
	if err != nil {
		return err
	}

	result, err := c.client.get(ctx, EndpointChannelsJoined, snapshot)
	if err != nil {
		return fmt.Errorf("rocketchat: listing joined channels: %w", err)
	}

	var decoded joinedChannelsResponse
	if err := json.Unmarshal(result.body, &decoded); err != nil {
		return malformed(EndpointChannelsJoined, "%v", err)
	}
	if err := rejection(EndpointChannelsJoined, result, decoded.failureResponse); err != nil {
		return err
	}
	if decoded.Channels == nil {
		return malformed(EndpointChannelsJoined, "channels is missing")
	}

	channels := make([]Channel, 0, len(decoded.Channels))
	for index, row := range decoded.Channels {
		if row.ID == "" {
			return malformed(EndpointChannelsJoined, "channels[%d]._id is missing", index)
		}
		if row.Name == "" {
			return malformed(EndpointChannelsJoined, "channel %s: name is missing", row.ID)
		}
		if row.Messages == nil {
			return malformed(EndpointChannelsJoined, "channel %s: msgs is missing", row.ID)
		}
		if *row.Messages < 0 {
			return malformed(EndpointChannelsJoined, "channel %s: negative msgs %d", row.ID, *row.Messages)
		}
		lastMessageAt, err := ParseOptionalTimestamp(row.LastMessage)
		if err != nil {
			return fmt.Errorf("%w from %s: channel %s: lm: %w", ErrMalformedResponse, EndpointChannelsJoined, row.ID, err)
		}
		channels = append(channels, Channel{
			ID:            row.ID,
			Name:          row.Name,
			NumMessages:   *row.Messages,
			LastMessageAt: lastMessageAt,
		})
	}

	c.store.SetJoinedChannels(channels)
	c.logger.Debug("refreshed joined channels", "count", len(channels))
	return nil
}

// RefreshAllRooms replaces the direct-room and channel-room snapshots
// with the server's rooms.get listing, committed together. Rows are
// partitioned by type; rows of unknown type are logged and dropped.
// If the response's success flag is false or absent the snapshots are
// left as they are and nil is returned. Returns ErrNotLoggedIn without
// a request if the Store is not logged in.
func (c *Catalog) RefreshAllRooms(ctx context.Context) error {
	snapshot, err := c.requireLogin(EndpointRoomsGet)
	if err != nil {
		return err
	}

	result, err := c.client.get(ctx, EndpointRoomsGet, snapshot)
	if err != nil {
		return fmt.Errorf("rocketchat: listing rooms: %w", err)
	}

	var decoded roomsResponse
	if err := json.Unmarshal(result.body, &decoded); err != nil {
		return malformed(EndpointRoomsGet, "%v", err)
	}
	if decoded.Success == nil || !*decoded.Success {
		c.logger.Info("room listing not successful, keeping previous rooms",
			"http_status", result.statusCode,
			"status", decoded.Status,
			"reason", decoded.reason(),
		)
		return nil
	}

	var direct []DirectRoom
	var channels []Channel
	for index, row := range decoded.Update {
		if row.ID == "" {
			return malformed(EndpointRoomsGet, "update[%d]._id is missing", index)
		}

		numMessages := 0
		if row.Messages != nil {
			if *row.Messages < 0 {
				return malformed(EndpointRoomsGet, "room %s: negative msgs %d", row.ID, *row.Messages)
			}
			numMessages = *row.Messages
		}
		lastMessageAt, err := ParseOptionalTimestamp(row.LastMessage)
		if err != nil {
			return fmt.Errorf("%w from %s: room %s: lm: %w", ErrMalformedResponse, EndpointRoomsGet, row.ID, err)
		}

		switch ClassifyRoomType(row.Type) {
		case RoomTypeDirect:
			usernames := row.Usernames
			if usernames == nil {
				usernames = []string{}
			}
			direct = append(direct, DirectRoom{
				ID:            row.ID,
				Usernames:     usernames,
				NumMessages:   numMessages,
				LastMessageAt: lastMessageAt,
			})
		case RoomTypeChannel:
			if row.Name == "" {
				return malformed(EndpointRoomsGet, "room %s: name is missing", row.ID)
			}
			channels = append(channels, Channel{
				ID:            row.ID,
				Name:          row.Name,
				NumMessages:   numMessages,
				LastMessageAt: lastMessageAt,
			})
		default:
			c.logger.Warn("dropping room of unknown type",
				"room_id", row.ID,
				"type", row.Type,
			)
		}
	}

	c.store.SetRooms(direct, channels)
	c.logger.Debug("refreshed rooms",
		"direct", len(direct),
		"channels", len(channels),
	)
	return nil
}

// requireLogin returns a request snapshot, or ErrNotLoggedIn if the
// snapshot carries no user id.
func (c *Catalog) requireLogin(endpoint string) (Snapshot, error) {
	snapshot := c.store.Snapshot()
	if !snapshot.LoggedIn() {
		c.logger.Error("listing requested while not logged in",
			"endpoint", endpoint,
		)
		return Snapshot{}, fmt.Errorf("%w: %s requires a logged-in session", ErrNotLoggedIn, endpoint)
	}
	return snapshot, nil
}

// rejection returns a *ServerError if the response reports failure
// through its HTTP status, its "status" field, or a false "success".
func rejection(endpoint string, result response, status failureResponse) error {
	failed := !result.ok() ||
		status.Status == "error" ||
		(status.Success != nil && !*status.Success)
	if !failed {
		return nil
	}
	return &ServerError{
		Endpoint:   endpoint,
		Status:     status.Status,
		Message:    status.reason(),
		StatusCode: result.statusCode,
	}
}
