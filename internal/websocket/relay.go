package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"skillswap-be/internal/dto"
	"skillswap-be/internal/pkg/logger"
)

const persistTimeout = 10 * time.Second

var errSendFailed = errors.New("failed to save message")

// MessageSender persists a chat message and returns it with the
// assigned id and timestamp.
type MessageSender interface {
	Send(ctx context.Context, senderId uint, receiverId uint, content string) (*dto.MessageResponse, error)
}

// Relay drives the per-channel protocol. A channel must present an
// auth frame before anything else; afterwards it may send message
// frames. Bad frames produce error frames but never close the channel.
type Relay struct {
	hub      *Hub
	messages MessageSender
	logger   logger.ILogger
}

func NewRelay(hub *Hub, messages MessageSender, log logger.ILogger) *Relay {
	return &Relay{
		hub:      hub,
		messages: messages,
		logger:   log,
	}
}

// HandleFrame processes one inbound frame. Called from the client's
// read pump, so frames of a single channel are handled sequentially.
func (r *Relay) HandleFrame(client *Client, raw []byte) {
	if client.state == stateClosed {
		return
	}

	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		client.enqueue(encodeError(&ProtocolError{Err: err}))
		return
	}

	switch frame.Type {
	case FrameAuth:
		r.handleAuth(client, &frame)
	case FrameMessage:
		r.handleMessage(client, &frame)
	default:
		if client.state != stateAuthenticated {
			client.enqueue(encodeError(ErrAuthRequired))
			return
		}
		// Unknown frame types from an authenticated peer are ignored.
		r.logger.Debug("Relay", "Ignoring unknown frame type", map[string]interface{}{
			"user_id": client.UserID,
			"type":    frame.Type,
		})
	}
}

func (r *Relay) handleAuth(client *Client, frame *Frame) {
	if frame.UserId == 0 {
		client.enqueue(encodeError(&ValidationError{Reason: "userId is required"}))
		return
	}
	if frame.UserId != client.SessionUserID {
		r.logger.Warn("Relay", "Auth identity mismatch", map[string]interface{}{
			"session_user_id": client.SessionUserID,
			"claimed_user_id": frame.UserId,
		})
		client.enqueue(encodeError(ErrIdentityMismatch))
		return
	}

	client.UserID = frame.UserId
	client.state = stateAuthenticated
	r.hub.Bind(client)
	client.enqueue(encodeAuthSuccess())
}

func (r *Relay) handleMessage(client *Client, frame *Frame) {
	if client.state != stateAuthenticated {
		client.enqueue(encodeError(ErrAuthRequired))
		return
	}
	if frame.ReceiverId == 0 {
		client.enqueue(encodeError(&ValidationError{Reason: "receiverId is required"}))
		return
	}
	if strings.TrimSpace(frame.Content) == "" {
		client.enqueue(encodeError(&ValidationError{Reason: "content must not be empty"}))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	saved, err := r.messages.Send(ctx, client.UserID, frame.ReceiverId, frame.Content)
	if err != nil {
		r.logger.Error("Relay", "Failed to persist message", map[string]interface{}{
			"sender_id":   client.UserID,
			"receiver_id": frame.ReceiverId,
			"error":       err.Error(),
		})
		client.enqueue(encodeError(errSendFailed))
		return
	}

	// Deliver to the receiver first, then confirm to the sender. A
	// receiver without a live channel reads the message from history.
	if !r.hub.Deliver(frame.ReceiverId, encodeMessage(FrameMessageNew, saved)) {
		r.logger.Debug("Relay", "Receiver has no local channel", map[string]interface{}{
			"message_id":  saved.Id,
			"receiver_id": frame.ReceiverId,
		})
	}
	client.enqueue(encodeMessage(FrameMessageSent, saved))
}

// HandleClose finalizes a channel whose connection ended. Safe to call
// for channels that never authenticated.
func (r *Relay) HandleClose(client *Client) {
	wasAuthenticated := client.state == stateAuthenticated
	client.state = stateClosed
	if wasAuthenticated {
		r.hub.Unbind(client)
		return
	}
	client.closeSend()
}
