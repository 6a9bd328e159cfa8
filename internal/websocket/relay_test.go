package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skillswap-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	nextId uint
	sent   []*dto.MessageResponse
	err    error
}

func (f *fakeSender) Send(ctx context.Context, senderId, receiverId uint, content string) (*dto.MessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextId++
	msg := &dto.MessageResponse{
		Id:         f.nextId,
		SenderId:   senderId,
		ReceiverId: receiverId,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	f.sent = append(f.sent, msg)
	return msg, nil
}

type outboundFrame struct {
	Type    string               `json:"type"`
	Message json.RawMessage      `json:"message"`
	Msg     *dto.MessageResponse `json:"-"`
	Text    string               `json:"-"`
}

// nextFrame pops one queued outbound frame, or nil when the channel
// has nothing pending.
func nextFrame(t *testing.T, c *Client) *outboundFrame {
	t.Helper()
	select {
	case raw, ok := <-c.Send:
		if !ok {
			return nil
		}
		var f outboundFrame
		require.NoError(t, json.Unmarshal(raw, &f))
		switch f.Type {
		case FrameError:
			var e errorFrame
			require.NoError(t, json.Unmarshal(raw, &e))
			f.Text = e.Message
		case FrameMessageNew, FrameMessageSent:
			var m dto.MessageResponse
			require.NoError(t, json.Unmarshal(f.Message, &m))
			f.Msg = &m
		}
		return &f
	default:
		return nil
	}
}

func newTestRelay(sender MessageSender) (*Relay, *Hub) {
	hub := newTestHub()
	return NewRelay(hub, sender, nopLogger{}), hub
}

func authenticate(t *testing.T, relay *Relay, hub *Hub, userID uint) *Client {
	t.Helper()
	c := NewClient(hub, nil, userID)
	relay.HandleFrame(c, []byte(`{"type":"auth","userId":`+jsonUint(userID)+`}`))
	frame := nextFrame(t, c)
	require.NotNil(t, frame)
	require.Equal(t, FrameAuthSuccess, frame.Type)
	return c
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestRelayAuthSuccess(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	c := authenticate(t, relay, hub, 7)

	assert.Equal(t, uint(7), c.UserID)
	got, found := hub.Lookup(7)
	assert.True(t, found)
	assert.Same(t, c, got)
}

func TestRelayMessageBeforeAuth(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	c := NewClient(hub, nil, 7)
	relay.HandleFrame(c, []byte(`{"type":"message","receiverId":2,"content":"hi"}`))

	frame := nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "not authenticated", frame.Text)

	// The channel stays usable: authentication still succeeds.
	relay.HandleFrame(c, []byte(`{"type":"auth","userId":7}`))
	frame = nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameAuthSuccess, frame.Type)
}

func TestRelayAuthIdentityMismatch(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	c := NewClient(hub, nil, 7)
	relay.HandleFrame(c, []byte(`{"type":"auth","userId":9}`))

	frame := nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "claimed identity does not match session", frame.Text)

	_, found := hub.Lookup(9)
	assert.False(t, found)
	_, found = hub.Lookup(7)
	assert.False(t, found)
}

func TestRelayAuthMissingUserId(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	c := NewClient(hub, nil, 7)
	relay.HandleFrame(c, []byte(`{"type":"auth"}`))

	frame := nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "userId is required", frame.Text)
}

func TestRelayMalformedFrame(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	c := NewClient(hub, nil, 7)
	relay.HandleFrame(c, []byte(`{not json`))

	frame := nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameError, frame.Type)
	assert.Contains(t, frame.Text, "malformed frame")

	// Still unauthenticated, still open.
	relay.HandleFrame(c, []byte(`{"type":"auth","userId":7}`))
	frame = nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameAuthSuccess, frame.Type)
}

func TestRelayMessageDeliveredAndAcked(t *testing.T) {
	sender := &fakeSender{}
	relay, hub := newTestRelay(sender)

	alice := authenticate(t, relay, hub, 1)
	bob := authenticate(t, relay, hub, 2)

	relay.HandleFrame(alice, []byte(`{"type":"message","receiverId":2,"content":"hello bob"}`))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, uint(1), sender.sent[0].SenderId)
	assert.Equal(t, uint(2), sender.sent[0].ReceiverId)
	assert.Equal(t, "hello bob", sender.sent[0].Content)

	received := nextFrame(t, bob)
	require.NotNil(t, received)
	assert.Equal(t, FrameMessageNew, received.Type)
	require.NotNil(t, received.Msg)
	assert.Equal(t, "hello bob", received.Msg.Content)
	assert.Equal(t, uint(1), received.Msg.SenderId)

	ack := nextFrame(t, alice)
	require.NotNil(t, ack)
	assert.Equal(t, FrameMessageSent, ack.Type)
	require.NotNil(t, ack.Msg)
	assert.Equal(t, received.Msg.Id, ack.Msg.Id)

	// Exactly one frame each.
	assert.Nil(t, nextFrame(t, bob))
	assert.Nil(t, nextFrame(t, alice))
}

func TestRelayMessageToOfflineReceiver(t *testing.T) {
	sender := &fakeSender{}
	relay, hub := newTestRelay(sender)

	alice := authenticate(t, relay, hub, 1)

	relay.HandleFrame(alice, []byte(`{"type":"message","receiverId":99,"content":"anyone there"}`))

	// Persisted even though nobody is listening.
	require.Len(t, sender.sent, 1)

	ack := nextFrame(t, alice)
	require.NotNil(t, ack)
	assert.Equal(t, FrameMessageSent, ack.Type)
	assert.Nil(t, nextFrame(t, alice))
}

func TestRelayMessageToSelf(t *testing.T) {
	sender := &fakeSender{}
	relay, hub := newTestRelay(sender)

	alice := authenticate(t, relay, hub, 1)

	relay.HandleFrame(alice, []byte(`{"type":"message","receiverId":1,"content":"note to self"}`))

	received := nextFrame(t, alice)
	require.NotNil(t, received)
	assert.Equal(t, FrameMessageNew, received.Type)

	ack := nextFrame(t, alice)
	require.NotNil(t, ack)
	assert.Equal(t, FrameMessageSent, ack.Type)
}

func TestRelayMessageValidation(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		wantMsg string
	}{
		{
			name:    "missing receiver",
			frame:   `{"type":"message","content":"hi"}`,
			wantMsg: "receiverId is required",
		},
		{
			name:    "empty content",
			frame:   `{"type":"message","receiverId":2,"content":""}`,
			wantMsg: "content must not be empty",
		},
		{
			name:    "whitespace content",
			frame:   `{"type":"message","receiverId":2,"content":"   "}`,
			wantMsg: "content must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			relay, hub := newTestRelay(sender)
			alice := authenticate(t, relay, hub, 1)

			relay.HandleFrame(alice, []byte(tt.frame))

			frame := nextFrame(t, alice)
			require.NotNil(t, frame)
			assert.Equal(t, FrameError, frame.Type)
			assert.Equal(t, tt.wantMsg, frame.Text)
			assert.Empty(t, sender.sent)
		})
	}
}

func TestRelayPersistenceFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("db down")}
	relay, hub := newTestRelay(sender)

	alice := authenticate(t, relay, hub, 1)
	bob := authenticate(t, relay, hub, 2)

	relay.HandleFrame(alice, []byte(`{"type":"message","receiverId":2,"content":"hi"}`))

	frame := nextFrame(t, alice)
	require.NotNil(t, frame)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "failed to save message", frame.Text)

	// Nothing reached the receiver.
	assert.Nil(t, nextFrame(t, bob))
}

func TestRelayIgnoresUnknownTypeWhenAuthenticated(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	alice := authenticate(t, relay, hub, 1)
	relay.HandleFrame(alice, []byte(`{"type":"typing","receiverId":2}`))

	assert.Nil(t, nextFrame(t, alice))
}

func TestRelayUnknownTypeBeforeAuth(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	c := NewClient(hub, nil, 7)
	relay.HandleFrame(c, []byte(`{"type":"typing"}`))

	frame := nextFrame(t, c)
	require.NotNil(t, frame)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "not authenticated", frame.Text)
}

func TestRelayCloseUnbinds(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	alice := authenticate(t, relay, hub, 1)
	relay.HandleClose(alice)

	_, found := hub.Lookup(1)
	assert.False(t, found)

	// Frames after close go nowhere.
	relay.HandleFrame(alice, []byte(`{"type":"message","receiverId":2,"content":"hi"}`))
	assert.Nil(t, nextFrame(t, alice))
}

func TestRelayEvictedChannelCloseKeepsNewBinding(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	first := authenticate(t, relay, hub, 7)
	second := authenticate(t, relay, hub, 7)

	// The evicted connection tears down after the replacement bound.
	relay.HandleClose(first)

	got, found := hub.Lookup(7)
	assert.True(t, found)
	assert.Same(t, second, got)
}

func TestRelayReAuthRebinds(t *testing.T) {
	relay, hub := newTestRelay(&fakeSender{})

	alice := authenticate(t, relay, hub, 1)

	// A second auth frame on the same channel is accepted and keeps the
	// binding intact.
	relay.HandleFrame(alice, []byte(`{"type":"auth","userId":1}`))
	frame := nextFrame(t, alice)
	require.NotNil(t, frame)
	assert.Equal(t, FrameAuthSuccess, frame.Type)

	got, found := hub.Lookup(1)
	assert.True(t, found)
	assert.Same(t, alice, got)
}
