package crm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	oauthjwt "golang.org/x/oauth2/jwt"
)

// assertionLifetime is the longest exp Salesforce accepts on a bearer assertion
const assertionLifetime = 3 * time.Minute

// JWTBearerAuthenticator implements the OAuth2 JWT bearer flow: a connected app's
// certificate key signs an assertion for the service-account user.
type JWTBearerAuthenticator struct {
	Config *oauthjwt.Config
}

// NewJWTBearerAuthenticator loads the PEM encoded RSA key at keyPath. The key is
// parsed here so a bad path or key fails startup instead of the first login.
func NewJWTBearerAuthenticator(loginURL, clientID, username, keyPath string) (*JWTBearerAuthenticator, error) {
	pem, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	if _, err := jwt.ParseRSAPrivateKeyFromPEM(pem); err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	loginURL = strings.TrimSuffix(loginURL, "/")
	return &JWTBearerAuthenticator{
		Config: &oauthjwt.Config{
			Email:      clientID,
			Subject:    username,
			PrivateKey: pem,
			TokenURL:   TokenURL(loginURL),
			Audience:   loginURL,
			Expires:    assertionLifetime,
		},
	}, nil
}

// Authenticate exchanges a fresh assertion for a token. The raw token response,
// instance_url included, is kept as the token's extra fields.
func (a *JWTBearerAuthenticator) Authenticate(ctx context.Context, client *http.Client) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
	return a.Config.TokenSource(ctx).Token()
}
