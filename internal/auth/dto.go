package auth

import (
	"github.com/angelmondragon/bookstore-admin/internal/menu"
	"github.com/angelmondragon/bookstore-admin/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens, the user and the menu that user may see.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
	Menu         []menu.Item    `json:"menu"`
}
