package database

type PairChatRepository interface {
	Ping() error
	ListUsers() ([]User, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessagesByRoom(roomId string) ([]Message, error)
}
