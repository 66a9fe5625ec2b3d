package response

import "food-marketplace/internal/data/entity"

type UserResponse struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   *string        `json:"phone"`
	Role    string         `json:"role"`
	Profile entity.Profile `json:"profile,omitempty"`
}

func UserToResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Role:    string(user.Role),
		Profile: user.Profile,
	}
}
