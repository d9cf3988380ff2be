package request

type UpdateUserRequest struct {
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=customer provider admin"`
	Blocked *bool   `json:"blocked,omitempty"`
}
