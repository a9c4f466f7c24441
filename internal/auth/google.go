// Package auth verifies Google ID tokens against the tokeninfo
// endpoint. This is the service's only identity collaborator: a
// bearer credential goes in, a verified principal comes out, and
// account records are created elsewhere from that principal.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// ErrInvalidToken is returned when Google rejects the ID token or the
// token was issued for a different OAuth client.
var ErrInvalidToken = errors.New("invalid google id token")

// Claims is the subset of the tokeninfo response the service uses.
type Claims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Audience string `json:"aud"`
}

// GoogleVerifier validates Google-issued ID tokens for a single OAuth
// client ID.
type GoogleVerifier struct {
	clientID string
	client   *http.Client
}

// NewGoogleVerifier returns a verifier for the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify asks Google's tokeninfo endpoint to validate the ID token
// and returns the claims on success. Tokens issued for a different
// audience are rejected even when Google considers them valid.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (Claims, error) {
	if idToken == "" {
		return Claims{}, ErrInvalidToken
	}
	u := tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Claims{}, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return Claims{}, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Claims{}, ErrInvalidToken
	}
	var claims Claims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return Claims{}, fmt.Errorf("tokeninfo decode: %w", err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return Claims{}, ErrInvalidToken
	}
	if v.clientID != "" && claims.Audience != v.clientID {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
