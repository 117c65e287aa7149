package output

import "context"

// Message is the renderable payload the core hands to the gateway. The
// gateway decides how to present it (embeds, plain text...); the body may
// contain chat markup such as user mentions.
type Message struct {
	Title  string
	Body   string
	Footer string
	Color  int
}

// Gateway posts public announcements and direct notifications. All calls
// are best-effort from the resolver's point of view: a failure is logged by
// the caller and never rolls back a resolution.
//
// Finalize rewrites an existing announcement in place and removes its
// interactive controls, so an ended event stops offering a live join or
// vote button.
type Gateway interface {
	Announce(ctx context.Context, channelID string, msg Message) error
	Finalize(ctx context.Context, channelID, messageID string, msg Message) error
	Notify(ctx context.Context, userID string, msg Message) error
}
