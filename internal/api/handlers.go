package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/pairchat/go-pairchat/internal/database"
	"github.com/pairchat/go-pairchat/internal/room"
	"github.com/pairchat/go-pairchat/internal/server"
	"github.com/pairchat/go-pairchat/internal/types"
	"github.com/teris-io/shortid"
)

func (s *PairChatApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

// storeError maps persistence failures onto the API error envelope.
func storeError(err error) *ApiError {
	switch {
	case database.IsValidation(err):
		return NewBadRequestError()
	case errors.Is(err, database.ErrStoreUnavailable):
		return NewServiceUnavailableError(err)
	default:
		return NewInternalServerError(err)
	}
}

func (s *PairChatApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewServiceUnavailableError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *PairChatApp) listUsers(w http.ResponseWriter, r *http.Request) {
	dbUsers, err := s.db.ListUsers()
	if err != nil {
		s.log.Println("list users:", err)
		errResp := storeError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	users := make([]types.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, types.User{
			Id:        u.Id,
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, users)
}

// getMessages returns the history for the pair of users named by the user1
// and user2 query parameters, in either order, ascending by creation time.
func (s *PairChatApp) getMessages(w http.ResponseWriter, r *http.Request) {
	user1 := r.URL.Query().Get("user1")
	user2 := r.URL.Query().Get("user2")
	if user1 == "" || user2 == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	roomId := room.ID(user1, user2)

	dbMessages, err := s.db.GetMessagesByRoom(roomId)
	if err != nil {
		s.log.Println("get messages:", err)
		errResp := storeError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, msg := range dbMessages {
		messages = append(messages, types.Message{
			Id:        msg.Id,
			RoomId:    msg.RoomId,
			SenderId:  msg.SenderId,
			Body:      msg.Body,
			CreatedAt: msg.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, messages)
}

func (s *PairChatApp) generateSessionId() (string, error) {
	return shortid.Generate()
}

func (s *PairChatApp) serveWs(w http.ResponseWriter, r *http.Request) {
	session, err := s.generateSessionId()
	if err != nil {
		s.log.Print("generateSessionId:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			// only allow connections from allowed origins
			origin := r.Header.Get("Origin")
			if origin == "" {
				// if no origin header, allow the request
				return true
			}

			return slices.Contains(s.allowedOrigins, origin)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("error upgrading connection:", err)
		return
	}

	s.log.Printf("new client connected: %s", session)

	client := server.NewClient(session, conn, s.cs, s.log)

	s.cs.RegisterClient(client)
	go client.Write()
	go client.Read()
}
