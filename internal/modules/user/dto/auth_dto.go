package dto

import (
	"time"

	"anoa.com/kolabboard/internal/entity"
	commonDto "anoa.com/kolabboard/pkg/dto"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,excludes=@,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=3,max=72"`
}

// RegisterFacultyRequest creates the user and its faculty profile together.
type RegisterFacultyRequest struct {
	Username     string `json:"username" binding:"required,notblank,excludes=@,min=3,max=50"`
	Email        string `json:"email" binding:"required,email,max=100"`
	Password     string `json:"password" binding:"required,min=3,max=72"`
	NIP          string `json:"nip" binding:"required,notblank,max=30"`
	Name         string `json:"name" binding:"required,notblank,max=100"`
	Faculty      string `json:"faculty" binding:"max=100"`
	StudyProgram string `json:"study_program" binding:"max=100"`
}

// LoginRequest accepts either an email or a username in Input.
type LoginRequest struct {
	Input    string `json:"input" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

type CheckUserRequest struct {
	Input string `json:"input" binding:"required,notblank"`
}

type RegisteredUser struct {
	commonDto.UserResponse
	FacultyProfile *entity.FacultyProfile `json:"faculty_profile,omitempty"`
}

type AuthResponse struct {
	AccessToken string                  `json:"token"`
	TokenType   string                  `json:"token_type"`
	ExpiresAt   time.Time               `json:"expires_at"`
	User        *commonDto.UserResponse `json:"user"`
}
