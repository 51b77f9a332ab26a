package database

import (
	"github.com/stretchr/testify/mock"
)

type MockPairChatRepository struct {
	mock.Mock
}

func (m *MockPairChatRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPairChatRepository) ListUsers() ([]User, error) {
	args := m.Called()
	if users, ok := args.Get(0).([]User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPairChatRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockPairChatRepository) GetMessagesByRoom(roomId string) ([]Message, error) {
	args := m.Called(roomId)
	if messages, ok := args.Get(0).([]Message); ok {
		return messages, args.Error(1)
	}
	return nil, args.Error(1)
}
