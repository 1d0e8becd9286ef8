package flows

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MrEthical07/pmAuth/permission"
)

// InviteDeps captures invite and registration flow dependencies.
type InviteDeps struct {
	Caller Caller
}

// InviteDetails is the decoded validate-invite response.
type InviteDetails struct {
	Valid bool
	Email string
	Role  permission.Role
}

type createInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type createInviteResponse struct {
	InviteLink string `json:"inviteLink"`
}

type validateInviteRequest struct {
	Token string `json:"token"`
}

type validateInviteResponse struct {
	IsValid bool   `json:"isValid"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type registerRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RunCreateInvite returns the invite path issued by the backend.
func RunCreateInvite(ctx context.Context, email string, role permission.Role, deps InviteDeps) (string, error) {
	var resp createInviteResponse
	if err := deps.Caller.Do(ctx, http.MethodPost, PathInvite, createInviteRequest{Email: email, Role: role.String()}, &resp); err != nil {
		return "", err
	}
	if resp.InviteLink == "" {
		return "", fmt.Errorf("%w: invite without link", ErrMalformedResponse)
	}
	return resp.InviteLink, nil
}

// RunValidateInvite checks token without consuming it. A response reporting a
// valid invite with an unknown role is malformed.
func RunValidateInvite(ctx context.Context, token string, deps InviteDeps) (InviteDetails, error) {
	var resp validateInviteResponse
	if err := deps.Caller.Do(ctx, http.MethodPost, PathValidateInvite, validateInviteRequest{Token: token}, &resp); err != nil {
		return InviteDetails{}, err
	}
	if !resp.IsValid {
		return InviteDetails{}, nil
	}

	role, err := permission.ParseRole(resp.Role)
	if err != nil {
		return InviteDetails{}, fmt.Errorf("%w: invite role: %v", ErrMalformedResponse, err)
	}
	return InviteDetails{Valid: true, Email: resp.Email, Role: role}, nil
}

// RunRegister consumes token. Any 2xx is success; the body is ignored.
func RunRegister(ctx context.Context, token, name, password string, deps InviteDeps) error {
	return deps.Caller.Do(ctx, http.MethodPost, PathRegister, registerRequest{Token: token, Name: name, Password: password}, nil)
}
