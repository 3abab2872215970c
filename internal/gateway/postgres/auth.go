package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
)

const msgNotAuthenticated = "Not authenticated"

// verify checks the access token signature and expiry and returns its claims.
func (c *Client) verify(accessToken string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.jwtSecret, nil
	}); err != nil {
		return nil, err
	}

	if sub, _ := claims["sub"].(string); sub == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

func (c *Client) GetUser(_ context.Context, accessToken string) (model.User, error) {
	claims, err := c.verify(accessToken)
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", &gateway.Error{
			Status:  http.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	user := model.User{}
	user.ID, _ = claims["sub"].(string)
	user.Email, _ = claims["email"].(string)
	return user, nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (model.Profile, error) {
	ctx, span := tracer.Start(ctx, "Client.GetProfile")
	defer span.End()

	var (
		profile model.Profile
		role    string
	)
	err := c.db.QueryRow(ctx, `
		SELECT user_id::text, role::text, full_name
		FROM profiles
		WHERE user_id::text = $1
	`, userID).Scan(&profile.UserID, &role, &profile.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, fmt.Errorf("get profile: %w", gateway.ErrNotFound)
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", translateError(err))
	}
	profile.Role = model.Role(role)

	return profile, nil
}
