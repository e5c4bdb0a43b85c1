package router

import (
	"context"
	"sync"

	"github.com/kiosk404/animus/internal/animusd/service/agent"
	"github.com/kiosk404/animus/internal/animusd/service/channel"
	"github.com/kiosk404/animus/internal/animusd/service/event"
	"github.com/kiosk404/animus/pkg/logger"
)

const moduleName = "router"

// failureNotice is sent back on a channel when the agent run failed with
// nothing better to say, or when delivering the real reply failed.
const failureNotice = "Sorry, something went wrong while handling that message."

// Router binds chat channels to the agent loop: every textual message
// arriving on a bound channel triggers one agent run and the run's
// output is sent back as the reply.
type Router struct {
	loop   *agent.Loop
	def    agent.Definition
	events *event.Bus

	mu       sync.Mutex
	channels map[string]channel.Channel
}

func New(loop *agent.Loop, def agent.Definition, events *event.Bus) *Router {
	return &Router{
		loop:     loop,
		def:      def,
		events:   events,
		channels: make(map[string]channel.Channel),
	}
}

// Bind registers a channel under the given name and starts routing its
// messages. Binding the same name again replaces the previous channel.
func (r *Router) Bind(name string, ch channel.Channel) {
	r.mu.Lock()
	r.channels[name] = ch
	r.mu.Unlock()

	ch.OnMessage(func(ctx context.Context, msg *channel.IncomingMessage) {
		r.handle(ctx, ch, msg)
	})
	logger.InfoX(moduleName, "channel %q bound to agent %q", name, r.def.ID)
}

// Stop drops all channel bookkeeping. Channels themselves are torn down
// by their owning plugins.
func (r *Router) Stop() {
	r.mu.Lock()
	r.channels = make(map[string]channel.Channel)
	r.mu.Unlock()
}

// Channels returns the names of currently bound channels.
func (r *Router) Channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	return names
}

func (r *Router) handle(ctx context.Context, ch channel.Channel, msg *channel.IncomingMessage) {
	if msg == nil {
		return
	}
	if msg.Kind != channel.KindText {
		logger.DebugX(moduleName, "ignoring non-text message %q on channel %q", msg.MessageID, msg.ChannelID)
		return
	}

	r.emit(ctx, event.MessageIncoming, event.MessagePayload{
		ChannelID: msg.ChannelID,
		MessageID: msg.MessageID,
	})

	res := r.loop.Run(ctx, r.def, agent.RunContext{
		AgentID:   r.def.ID,
		ChannelID: msg.ChannelID,
	}, msg.Text)

	reply := res.Output
	if res.Error != "" && reply == "" {
		logger.WarnX(moduleName, "agent run failed for message %q: %s", msg.MessageID, res.Error)
		reply = failureNotice
	}
	if reply == "" {
		logger.DebugX(moduleName, "empty reply for message %q, nothing to send", msg.MessageID)
		return
	}

	if err := ch.Send(ctx, &channel.OutgoingMessage{Text: reply, ReplyTo: msg.MessageID}); err != nil {
		logger.WarnX(moduleName, "failed to send reply on channel %q: %v", msg.ChannelID, err)
		if reply != failureNotice {
			notice := &channel.OutgoingMessage{Text: failureNotice, ReplyTo: msg.MessageID}
			if nerr := ch.Send(ctx, notice); nerr != nil {
				logger.WarnX(moduleName, "failed to send failure notice on channel %q: %v", msg.ChannelID, nerr)
			}
		}
		return
	}

	r.emit(ctx, event.MessageOutgoing, event.MessagePayload{
		ChannelID: msg.ChannelID,
		MessageID: msg.MessageID,
	})
}

func (r *Router) emit(ctx context.Context, name string, payload interface{}) {
	if r.events != nil {
		r.events.Emit(ctx, name, payload)
	}
}
