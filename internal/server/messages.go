package server

import (
	"net/http"
	"time"

	"github.com/pairchat/go-pairchat/internal/types"
)

type BaseMessage struct {
	Id        int       `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is the envelope for inbound events on a connection. Exactly
// one of the event fields is expected to be set.
type ClientMessage struct {
	BaseMessage
	Join *Join `json:"join,omitempty"`
	Send *Send `json:"send,omitempty"`
}

type Join struct {
	SelfId string `json:"self_id"`
	PeerId string `json:"peer_id"`
}

type Send struct {
	SenderId   string `json:"sender_id"`
	ReceiverId string `json:"receiver_id"`
	Body       string `json:"body"`
}

// ServerMessage is the envelope for outbound frames: either a response to a
// client event or a broadcast message for a room the client has joined.
type ServerMessage struct {
	BaseMessage
	Response *Response      `json:"response,omitempty"`
	Message  *types.Message `json:"message,omitempty"`
}

type Response struct {
	ResponseCode int            `json:"response_code"`
	Error        string         `json:"error,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

func NoErrOK(id int, data map[string]any) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusOK,
			Data:         data,
		},
	}
}

func ErrBadRequest(id int, reason string) *ServerMessage {
	msg := &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusBadRequest,
			Error:        reason,
		},
	}

	if id > 0 {
		msg.Id = id
	}
	return msg
}

func ErrInvalidMessage(id int) *ServerMessage {
	return ErrBadRequest(id, "invalid message format")
}

func ErrServiceUnavailable(id int) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusServiceUnavailable,
			Error:        "service unavailable",
		},
	}
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
