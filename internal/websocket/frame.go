package websocket

import (
	"encoding/json"

	"skillswap-be/internal/dto"
)

// Frame types accepted from clients.
const (
	FrameAuth    = "auth"
	FrameMessage = "message"
)

// Frame types emitted to clients.
const (
	FrameAuthSuccess = "auth_success"
	FrameMessageNew  = "message"
	FrameMessageSent = "message_sent"
	FrameError       = "error"
)

// Frame is the single inbound envelope. Fields beyond Type are
// interpreted per frame type; unknown fields are ignored.
type Frame struct {
	Type       string `json:"type"`
	UserId     uint   `json:"userId,omitempty"`
	ReceiverId uint   `json:"receiverId,omitempty"`
	Content    string `json:"content,omitempty"`
}

type authSuccessFrame struct {
	Type string `json:"type"`
}

type messageFrame struct {
	Type    string               `json:"type"`
	Message *dto.MessageResponse `json:"message"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func encodeAuthSuccess() []byte {
	payload, _ := json.Marshal(authSuccessFrame{Type: FrameAuthSuccess})
	return payload
}

func encodeMessage(frameType string, message *dto.MessageResponse) []byte {
	payload, _ := json.Marshal(messageFrame{Type: frameType, Message: message})
	return payload
}

func encodeError(err error) []byte {
	payload, _ := json.Marshal(errorFrame{Type: FrameError, Message: err.Error()})
	return payload
}
