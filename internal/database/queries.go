package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (db *PgPairChatRepository) Ping() error {
	if err := db.conn.Ping(); err != nil {
		return fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}
	return nil
}

func (db *PgPairChatRepository) ListUsers() ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, username, created_at FROM users ORDER BY username",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Id, &u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}

	return users, nil
}

// CreateMessage persists a new message. The id and creation timestamp are
// assigned here, at persistence time, and returned on the populated record.
func (db *PgPairChatRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	switch {
	case params.RoomId == "":
		return Message{}, &ValidationError{Field: "room id"}
	case params.SenderId == "":
		return Message{}, &ValidationError{Field: "sender id"}
	case params.Body == "":
		return Message{}, &ValidationError{Field: "body"}
	}

	msg := Message{
		Id:        uuid.NewString(),
		RoomId:    params.RoomId,
		SenderId:  params.SenderId,
		Body:      params.Body,
		CreatedAt: time.Now().UTC().Round(time.Millisecond),
	}

	res := db.conn.QueryRow(
		"INSERT INTO messages (id, room_id, sender_id, body, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING seq",
		msg.Id,
		msg.RoomId,
		msg.SenderId,
		msg.Body,
		msg.CreatedAt,
	)

	if err := res.Scan(&msg.Seq); err != nil {
		return Message{}, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}

	return msg, nil
}

// GetMessagesByRoom returns all messages for a room ordered ascending by
// creation time, with insertion order breaking ties. An unknown room yields
// an empty slice.
func (db *PgPairChatRepository) GetMessagesByRoom(roomId string) ([]Message, error) {
	if roomId == "" {
		return nil, &ValidationError{Field: "room id"}
	}

	rows, err := db.conn.Query(
		"SELECT id, seq, room_id, sender_id, body, created_at FROM messages "+
			"WHERE room_id = $1 ORDER BY created_at ASC, seq ASC",
		roomId,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.Id, &m.Seq, &m.RoomId, &m.SenderId, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}

	return messages, nil
}
