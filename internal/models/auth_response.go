package models

import "github.com/google/uuid"

// MessageResponse is the body of every plain acknowledgement and error
type MessageResponse struct {
	Msg string `json:"msg"`
}

// UserSummary is the public part of a user returned after login
type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Msg         string      `json:"msg"`
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}
