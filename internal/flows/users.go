package flows

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

// UsersDeps captures user-management flow dependencies.
type UsersDeps struct {
	Caller Caller
}

type roleRequest struct {
	Role string `json:"role"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// RunListUsers fetches every user. One malformed entry fails the whole list.
func RunListUsers(ctx context.Context, deps UsersDeps) ([]session.User, error) {
	var resp []wireUser
	if err := deps.Caller.Do(ctx, http.MethodGet, PathUsers, nil, &resp); err != nil {
		return nil, err
	}

	users := make([]session.User, 0, len(resp))
	for _, w := range resp {
		u, err := w.toUser()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func RunChangeUserRole(ctx context.Context, userID string, role permission.Role, deps UsersDeps) error {
	return deps.Caller.Do(ctx, http.MethodPatch, userPath(userID, "role"), roleRequest{Role: role.String()}, nil)
}

func RunChangeUserStatus(ctx context.Context, userID string, status permission.AccountStatus, deps UsersDeps) error {
	return deps.Caller.Do(ctx, http.MethodPatch, userPath(userID, "status"), statusRequest{Status: status.String()}, nil)
}

func userPath(userID, field string) string {
	return PathUsers + "/" + url.PathEscape(userID) + "/" + field
}
