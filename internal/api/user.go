package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ghaggin/storefront/internal/model"
)

type meResponse struct {
	Success bool `json:"success"`
	User    *struct {
		Email string `json:"email"`
	} `json:"user"`
}

// WhoAmI asks the backend which principal the request credentials belong to.
// Every failure to produce one, including transport errors, wraps
// ErrUnauthenticated. It is not bounded by api.timeout: callers bound it
// through ctx.
func (c *Client) WhoAmI(ctx context.Context) (string, error) {
	var me meResponse
	_, err := c.callUnbounded(ctx, "who_am_i", http.MethodGet, "/api/v2/user/me", nil, nil, &me)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if !me.Success || me.User == nil {
		return "", ErrUnauthenticated
	}

	email := strings.TrimSpace(me.User.Email)
	if email == "" {
		return "", ErrUnauthenticated
	}
	return email, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
}

// Login authenticates against the backend. The returned cookies are the
// backend session and must be relayed to the browser unchanged.
func (c *Client) Login(ctx context.Context, email, password string) (string, []*http.Cookie, error) {
	var out loginResponse
	resp, err := c.call(ctx, "login", http.MethodPost, "/api/v2/user/login", nil, loginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return "", nil, err
	}

	principal := email
	if out.User != nil && out.User.Email != "" {
		principal = out.User.Email
	}
	return principal, resp.Cookies(), nil
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	_, err := c.call(ctx, "signup", http.MethodPost, "/api/v2/user/create-user", nil, signupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil)
	return err
}

func (c *Client) Profile(ctx context.Context, email string) (*model.Profile, error) {
	var out model.Profile
	_, err := c.call(ctx, "profile", http.MethodGet, "/api/v2/user/profile", emailQuery(email), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type addAddressRequest struct {
	model.Address
	Email string `json:"email"`
}

func (c *Client) AddAddress(ctx context.Context, email string, addr model.Address) error {
	_, err := c.call(ctx, "add_address", http.MethodPost, "/api/v2/user/add-address", nil, addAddressRequest{
		Address: addr,
		Email:   email,
	}, nil)
	return err
}
