package dto

import "github.com/friendpay/friendpay_backend/internal/core/domain"

// AddConnectionRequest asks to connect the authenticated user to the account
// holding the given email.
type AddConnectionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConnectionsResponse lists the authenticated user's connections.
type ConnectionsResponse struct {
	Connections []UserResponse `json:"connections"`
}

// ToConnectionsResponse converts the peer list to its outward form.
func ToConnectionsResponse(peers []domain.User) ConnectionsResponse {
	resp := ConnectionsResponse{Connections: make([]UserResponse, len(peers))}
	for i := range peers {
		resp.Connections[i] = ToUserResponse(&peers[i])
	}
	return resp
}
