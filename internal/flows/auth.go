package flows

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MrEthical07/pmAuth/session"
)

// AuthDeps captures login flow dependencies.
type AuthDeps struct {
	Caller Caller
	Store  LoginStore
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  *wireUser `json:"user"`
}

// RunLogin authenticates and installs the returned pair into the store. The
// store is only touched after a complete response.
func RunLogin(ctx context.Context, email, password string, deps AuthDeps) (session.User, error) {
	var resp loginResponse
	if err := deps.Caller.Do(ctx, http.MethodPost, PathLogin, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return session.User{}, err
	}
	if resp.Token == "" || resp.User == nil {
		return session.User{}, fmt.Errorf("%w: login without token or user", ErrMalformedResponse)
	}

	user, err := resp.User.toUser()
	if err != nil {
		return session.User{}, err
	}
	if err := deps.Store.Login(ctx, resp.Token, user); err != nil {
		return session.User{}, err
	}
	return user, nil
}
