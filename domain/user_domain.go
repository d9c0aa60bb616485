package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetUser       = "success get user"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageSuccessLogout        = "logout successful, discard the token on this device"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetUser       = "failed to get user"
	MessageFailedUpdateProfile = "failed to update profile"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHashPassword       = errors.New("failed to hash password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token     string   `json:"token"`
		ExpiresIn int64    `json:"expires_in"` // seconds
		User      UserInfo `json:"user"`
	}

	// UserInfo is the profile part of a session.
	UserInfo struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		ImageURL string `json:"image_url,omitempty"`
		Role     string `json:"role"`
	}

	UpdateProfileRequest struct {
		Name  string                `json:"name" form:"name" validate:"omitempty,min=1"`
		Image *multipart.FileHeader `json:"image" form:"image"`
	}
)
