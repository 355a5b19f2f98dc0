package feed

import "github.com/google/uuid"

// ChannelPrefix is the prefix for per-owner feed channels.
const ChannelPrefix = "bookmarkd:feed:"

// Channel returns the pub/sub channel carrying one owner's change events.
// Scoping the channel by owner is what keeps every subscriber inside its
// own account's data.
func Channel(ownerID uuid.UUID) string {
	return ChannelPrefix + ownerID.String()
}
