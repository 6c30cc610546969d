package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	FullName         string `json:"full_name" validate:"required"`
	Password         string `json:"password" validate:"required,min=8"`
	SecurityQuestion string `json:"security_question" validate:"required"`
	SecurityAnswer   string `json:"security_answer" validate:"required"`
}

type RegisterResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserInfo `json:"user"`
}

// Three-step password reset. Each step returns the credential the next step
// requires, so skipping ahead is impossible.

type ForgotPasswordStartRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordStartResponse struct {
	FlowId           string `json:"flow_id"`
	SecurityQuestion string `json:"security_question"`
}

type ForgotPasswordVerifyRequest struct {
	FlowId string `json:"flow_id" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}

type ForgotPasswordVerifyResponse struct {
	ResetToken string `json:"reset_token"`
}

type ForgotPasswordResetRequest struct {
	FlowId      string `json:"flow_id" validate:"required"`
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
