package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
)

// GetUser asks the auth server who owns the access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (model.User, error) {
	var user model.User
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"auth", "v1", "user"},
		creds:  c.user(accessToken),
	}, &user); err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	if user.ID == "" {
		return model.User{}, &gateway.Error{Status: http.StatusUnauthorized, Message: "session has no user"}
	}

	return user, nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (model.Profile, error) {
	query := url.Values{}
	query.Set("select", "user_id,role,full_name")
	query.Set("user_id", "eq."+userID)

	var profile model.Profile
	if err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    []string{"rest", "v1", "profiles"},
		query:   query,
		creds:   c.service(),
		headers: map[string]string{headerAccept: acceptSingleRow},
	}, &profile); err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

// Ping checks that the auth server answers.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   []string{"auth", "v1", "health"},
		creds:  credentials{apiKey: c.anonKey, bearer: c.anonKey},
	}, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
