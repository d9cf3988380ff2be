package response

import (
	"time"

	"home-services/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	Blocked   bool            `json:"blocked"`
	Phone     *string         `json:"phone,omitempty"`
	AvatarURL *string         `json:"avatarUrl,omitempty"`
	Address   *string         `json:"address,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Blocked:   user.Blocked,
		Phone:     user.Phone,
		AvatarURL: user.AvatarURL,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}
}
