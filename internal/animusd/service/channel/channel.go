// Package channel defines the contract between the runtime and chat-channel
// plugins. Concrete adapters (polling, webhooks, protocol translation) live
// behind Channel.
package channel

import (
	"context"
)

// ContentKind classifies inbound message content.
type ContentKind string

const (
	// KindText is plain text; the only kind the router processes.
	KindText ContentKind = "text"
	// KindOther is anything else (media, stickers, reactions). Logged and
	// skipped by the router.
	KindOther ContentKind = "other"
)

// IncomingMessage is one message delivered by a channel adapter.
type IncomingMessage struct {
	// ChannelID identifies the plugin instance that delivered the message.
	ChannelID string
	// MessageID is the channel-local message identifier.
	MessageID string
	// SenderID identifies the author on the channel's terms.
	SenderID string
	// Kind classifies the content.
	Kind ContentKind
	// Text is the message text for KindText.
	Text string
}

// OutgoingMessage is a reply routed back to a channel.
type OutgoingMessage struct {
	// Text is the reply body.
	Text string
	// ReplyTo is the MessageID of the triggering message.
	ReplyTo string
}

// Handler consumes inbound messages. Registered once per channel by the
// message router.
type Handler func(ctx context.Context, msg *IncomingMessage)

// Channel is the capability interface of channel plugins.
type Channel interface {
	// OnMessage registers the inbound handler. Implementations must not
	// invoke it before their Init has completed.
	OnMessage(h Handler)

	// Send delivers an outgoing message on this channel.
	Send(ctx context.Context, msg *OutgoingMessage) error
}
