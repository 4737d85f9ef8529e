package handler

import (
	"time"

	"github.com/msomdec/connectrandom/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	City     string `json:"city"`
	Email    string `json:"email"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Age:      u.Age,
		Gender:   u.Gender,
		City:     u.City,
		Email:    u.Email,
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// MessageDTO is the JSON representation of a message.
type MessageDTO struct {
	ID       int64  `json:"id"`
	FromUser string `json:"fromUser"`
	ToUser   string `json:"toUser"`
	Content  string `json:"content"`
	SentAt   string `json:"sentAt"`
}

func toMessageDTO(m *domain.Message) MessageDTO {
	return MessageDTO{
		ID:       m.ID,
		FromUser: m.FromUser,
		ToUser:   m.ToUser,
		Content:  m.Content,
		SentAt:   m.SentAt.Format(time.RFC3339),
	}
}

func toMessageDTOs(messages []domain.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i := range messages {
		dtos[i] = toMessageDTO(&messages[i])
	}
	return dtos
}
