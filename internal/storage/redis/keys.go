package redis

import (
	"fmt"

	"github.com/dstanton/trivianight/internal/model"
)

// Key prefix for all session data
const keyPrefix = "trivianight"

// playerKey returns the Redis key for a Player record
func playerKey(id model.ConnectionID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// roomMembersKey returns the Redis key for the LIST of connections in
// a room, in join order
func roomMembersKey(room model.RoomKey) string {
	return fmt.Sprintf("%s:room:%s:members", keyPrefix, room)
}

// roomNamesKey returns the Redis key for the HASH of normalized
// display name -> connection id per room
func roomNamesKey(room model.RoomKey) string {
	return fmt.Sprintf("%s:room:%s:names", keyPrefix, room)
}

// roundKey returns the Redis key for a room's Round record
func roundKey(room model.RoomKey) string {
	return fmt.Sprintf("%s:round:%s", keyPrefix, room)
}
