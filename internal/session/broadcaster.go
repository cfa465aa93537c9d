package session

import "github.com/dstanton/trivianight/internal/model"

// Broadcaster is the transport capability the coordinator needs:
// room-scoped delivery plus subscription bookkeeping. Deliveries are
// fire-and-forget; broadcasting to an empty or reduced room is not an
// error. Implemented by the websocket hub.
type Broadcaster interface {
	// Subscribe adds a connection to a room's broadcast group
	Subscribe(id model.ConnectionID, room model.RoomKey)

	// Unsubscribe removes a connection from a room's broadcast group
	Unsubscribe(id model.ConnectionID, room model.RoomKey)

	// ToRoom delivers an event to every member of a room
	ToRoom(room model.RoomKey, event model.EventName, payload any)

	// ToRoomExcept delivers an event to every member of a room except
	// the named connection
	ToRoomExcept(id model.ConnectionID, room model.RoomKey, event model.EventName, payload any)

	// ToConnection delivers an event to a single connection
	ToConnection(id model.ConnectionID, event model.EventName, payload any)
}
