package database

import "time"

type User struct {
	Id        int
	Username  string
	CreatedAt time.Time
}

type Message struct {
	Id        string
	Seq       int64
	RoomId    string
	SenderId  string
	Body      string
	CreatedAt time.Time
}

type CreateMessageParams struct {
	RoomId   string
	SenderId string
	Body     string
}
