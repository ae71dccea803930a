package crm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrNotConnected is returned by every call made before a session was established
var ErrNotConnected = errors.New("crm session not established")

// Authenticator obtains an access token for the service account.
// The token must carry the org's instance_url as an extra field.
type Authenticator interface {
	Authenticate(ctx context.Context, client *http.Client) (*oauth2.Token, error)
}

// connection is the immutable state of an established session
type connection struct {
	instanceURL string
	client      *http.Client
}

// Session is the single CRM login shared by all requests.
// Connect publishes the connection once; afterwards it is only read.
type Session struct {
	auth   Authenticator
	base   *http.Client
	logger *zap.Logger
	conn   atomic.Pointer[connection]
}

// NewSession creates a session that is not yet connected
func NewSession(auth Authenticator, base *http.Client, logger *zap.Logger) *Session {
	if base == nil {
		base = http.DefaultClient
	}
	return &Session{
		auth:   auth,
		base:   base,
		logger: logger,
	}
}

// Connect logs in. It is a no-op once the session is established.
func (s *Session) Connect(ctx context.Context) error {
	if s.Ready() {
		return nil
	}
	if s.auth == nil {
		return fmt.Errorf("crm login: no authenticator configured")
	}

	token, err := s.auth.Authenticate(ctx, s.base)
	if err != nil {
		return fmt.Errorf("crm login: %w", err)
	}

	instanceURL, _ := token.Extra("instance_url").(string)
	if instanceURL == "" {
		return fmt.Errorf("crm login: token response has no instance_url")
	}

	// The token source is static: the session lives as long as the process and
	// is never refreshed per request.
	clientCtx := context.WithValue(context.Background(), oauth2.HTTPClient, s.base)
	conn := &connection{
		instanceURL: strings.TrimSuffix(instanceURL, "/"),
		client:      oauth2.NewClient(clientCtx, oauth2.StaticTokenSource(token)),
	}
	if !s.conn.CompareAndSwap(nil, conn) {
		return nil
	}

	s.logger.Info("Connected to CRM", zap.String("instance_url", conn.instanceURL))
	return nil
}

// Ready reports whether a session was established
func (s *Session) Ready() bool {
	return s.conn.Load() != nil
}

// InstanceURL returns the org's API host, or "" before Connect succeeded
func (s *Session) InstanceURL() string {
	if c := s.conn.Load(); c != nil {
		return c.instanceURL
	}
	return ""
}

func (s *Session) connection() (*connection, error) {
	c := s.conn.Load()
	if c == nil {
		return nil, ErrNotConnected
	}
	return c, nil
}

// PasswordAuthenticator implements the OAuth2 username-password flow
type PasswordAuthenticator struct {
	Config        *oauth2.Config
	Username      string
	Password      string
	SecurityToken string
}

// NewPasswordAuthenticator creates an authenticator for a connected app
func NewPasswordAuthenticator(loginURL, clientID, clientSecret, username, password, securityToken string) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  TokenURL(loginURL),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		Username:      username,
		Password:      password,
		SecurityToken: securityToken,
	}
}

// Authenticate exchanges the service-account credentials for a token
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, client *http.Client) (*oauth2.Token, error) {
	if a.Username == "" || a.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
	return a.Config.PasswordCredentialsToken(ctx, a.Username, a.Password+a.SecurityToken)
}

// TokenURL returns the OAuth2 token endpoint of a login host
func TokenURL(loginURL string) string {
	return strings.TrimSuffix(loginURL, "/") + "/services/oauth2/token"
}
