package types

// UserResponse is the wire shape for a user. The password hash
// must never leave the server, so it has no field here.
type UserResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Avatar             string `json:"avatar,omitempty"`
	MustChangePassword bool   `json:"mustChangePassword"`
}
