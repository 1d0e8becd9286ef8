package flows

import (
	"fmt"

	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

// wireUser is the backend user shape. Some responses only carry the document
// id as "_id".
type wireUser struct {
	ID       string `json:"id"`
	LegacyID string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func (w wireUser) toUser() (session.User, error) {
	id := w.ID
	if id == "" {
		id = w.LegacyID
	}
	if id == "" {
		return session.User{}, fmt.Errorf("%w: user without id", ErrMalformedResponse)
	}
	role, err := permission.ParseRole(w.Role)
	if err != nil {
		return session.User{}, fmt.Errorf("%w: user %s: %v", ErrMalformedResponse, id, err)
	}
	status, err := permission.ParseStatus(w.Status)
	if err != nil {
		return session.User{}, fmt.Errorf("%w: user %s: %v", ErrMalformedResponse, id, err)
	}
	return session.User{
		ID:     id,
		Name:   w.Name,
		Email:  w.Email,
		Role:   role,
		Status: status,
	}, nil
}
