package middleware

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"

	"creatorflow-backend-go/internal/models"
)

// FirebaseAuthenticator verifies Firebase ID tokens.
type FirebaseAuthenticator struct {
	client *auth.Client
}

// NewFirebaseAuthenticator panics on a nil client.
func NewFirebaseAuthenticator(client *auth.Client) *FirebaseAuthenticator {
	if client == nil {
		panic("Firebase Auth client is not initialized")
	}
	return &FirebaseAuthenticator{client: client}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, idToken string) (*models.Identity, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	identity := &models.Identity{Subject: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}

// Claims is the payload of tokens accepted in jwt mode.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator verifies HS256 tokens signed with a shared secret.
type JWTAuthenticator struct {
	secret []byte
	issuer string
}

// NewJWTAuthenticator creates an authenticator for tokens signed with secret.
// An empty issuer skips the issuer check.
func NewJWTAuthenticator(secret, issuer string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), issuer: issuer}
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, tokenStr string) (*models.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &models.Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// SignToken mints a token accepted by a JWTAuthenticator with the same
// secret and issuer.
func (a *JWTAuthenticator) SignToken(claims Claims) (string, error) {
	if claims.Issuer == "" {
		claims.Issuer = a.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// StaticAuthenticator returns the same identity for every request. Only
// allowed outside release mode.
type StaticAuthenticator struct {
	identity models.Identity
}

// NewStaticAuthenticator creates an authenticator that always yields identity.
func NewStaticAuthenticator(identity models.Identity) *StaticAuthenticator {
	return &StaticAuthenticator{identity: identity}
}

func (a *StaticAuthenticator) Authenticate(context.Context, string) (*models.Identity, error) {
	identity := a.identity
	return &identity, nil
}
