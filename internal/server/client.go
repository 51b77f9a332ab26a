package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pairchat/go-pairchat/internal/database"
	"github.com/pairchat/go-pairchat/internal/room"
	"github.com/pairchat/go-pairchat/internal/stats"
	"github.com/pairchat/go-pairchat/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1024
)

type Client struct {
	conn       *websocket.Conn
	chatServer *ChatServer
	log        *log.Logger
	session    string
	send       chan *ServerMessage
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewClient(session string, conn *websocket.Conn, cs *ChatServer, l *log.Logger) *Client {
	return &Client{
		conn:       conn,
		chatServer: cs,
		log:        l,
		session:    session,
		send:       make(chan *ServerMessage, 256),
		stop:       make(chan struct{}),
	}
}

func (c *Client) Write() {
	ticker := time.NewTicker(time.Duration(pingInterval))
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Printf("session %q: write exiting", c.session)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			bytes, err := c.serializeMessage(msg)
			if err != nil {
				c.log.Println("failed to serialize message:", err)
				continue
			}

			if !c.sendMessage(websocket.TextMessage, bytes) {
				return
			}
		case <-c.stop:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !c.sendMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

// Read drains the connection one event at a time. An event is fully handled
// before the next is read, which is what orders a single connection's joins
// and sends relative to each other.
func (c *Client) Read() {
	defer func() {
		c.conn.Close()
		c.cleanup()
		c.log.Printf("session %q: read exiting", c.session)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Printf("ws: read: %v", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Println("error parsing message:", err)
			c.queueMessage(ErrInvalidMessage(-1))
			continue
		}

		msg.Timestamp = Now()

		switch {
		case msg.Join != nil:
			c.handleJoin(&msg)
		case msg.Send != nil:
			c.handleSend(&msg)
		default:
			c.queueMessage(ErrInvalidMessage(msg.Id))
		}
	}
}

func (c *Client) handleJoin(msg *ClientMessage) {
	if msg.Join.SelfId == "" || msg.Join.PeerId == "" {
		c.queueMessage(ErrBadRequest(msg.Id, "self_id and peer_id are required"))
		return
	}

	roomId := room.ID(msg.Join.SelfId, msg.Join.PeerId)
	if c.chatServer.registry.Join(c, roomId) {
		c.chatServer.stats.Incr(stats.TotalJoins)
		c.log.Printf("session %q joined room %q", c.session, roomId)
	}

	c.queueMessage(NoErrOK(msg.Id, map[string]any{"room_id": roomId}))
}

// handleSend persists the message and, only on success, broadcasts the
// persisted record to the room. A message that fails to persist is never
// seen by anyone; the failure goes back to the sending connection only.
func (c *Client) handleSend(msg *ClientMessage) {
	send := msg.Send
	if send.SenderId == "" || send.ReceiverId == "" {
		c.queueMessage(ErrBadRequest(msg.Id, "sender_id and receiver_id are required"))
		return
	}
	if send.Body == "" {
		c.queueMessage(ErrBadRequest(msg.Id, "body is required"))
		return
	}

	roomId := room.ID(send.SenderId, send.ReceiverId)
	dbMsg, err := c.chatServer.db.CreateMessage(database.CreateMessageParams{
		RoomId:   roomId,
		SenderId: send.SenderId,
		Body:     send.Body,
	})
	if err != nil {
		c.log.Println("create message:", err)
		if database.IsValidation(err) {
			c.queueMessage(ErrBadRequest(msg.Id, err.Error()))
		} else {
			c.queueMessage(ErrServiceUnavailable(msg.Id))
		}
		return
	}

	c.chatServer.stats.Incr(stats.TotalMessages)

	c.chatServer.registry.Broadcast(roomId, &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: dbMsg.CreatedAt,
		},
		Message: &types.Message{
			Id:        dbMsg.Id,
			RoomId:    dbMsg.RoomId,
			SenderId:  dbMsg.SenderId,
			Body:      dbMsg.Body,
			CreatedAt: dbMsg.CreatedAt,
		},
	})
}

func (c *Client) queueMessage(msg *ServerMessage) bool {
	select {
	case c.send <- msg:
	default:
		c.log.Printf("session %q: send buffer full, dropping message", c.session)
		return false
	}

	return true
}

func (c *Client) serializeMessage(msg *ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}

func (c *Client) sendMessage(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Printf("write message: %s", err)
		}
		return false
	}

	return true
}

func (c *Client) stopClient() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Client) cleanup() {
	c.chatServer.registry.LeaveAll(c)
	select {
	case c.chatServer.deRegisterChan <- c:
	case <-c.stop:
		// hub already stopped, nothing left to deregister from
	}
	c.stopClient()
}
