package dto

type ProfileResponse struct {
	UserInfo
	SecurityQuestion string `json:"security_question"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
