package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/ports"
)

// JWTSigner signs and validates RS256 session tokens. Asymmetric keys let
// read-side services verify tokens without holding signing material.
type JWTSigner struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	keyID      string
}

type sessionClaims struct {
	ProviderID string `json:"provider_id"`
	Email      string `json:"email"`
	SessionID  string `json:"session_id"`
	jwt.RegisteredClaims
}

func NewJWTSigner(privatePEM, publicPEM []byte, issuer, keyID string) (*JWTSigner, error) {
	priv, err := parseRSAPrivate(privatePEM)
	if err != nil {
		return nil, err
	}
	pub, err := parseRSAPublic(publicPEM)
	if err != nil {
		return nil, err
	}
	return &JWTSigner{privateKey: priv, publicKey: pub, issuer: issuer, keyID: keyID}, nil
}

// NewEphemeralJWTSigner generates a throwaway keypair. Tokens do not survive
// restarts, which is acceptable only in development setups.
func NewEphemeralJWTSigner(issuer string) (*JWTSigner, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral keypair: %w", err)
	}
	return &JWTSigner{
		privateKey: key,
		publicKey:  &key.PublicKey,
		issuer:     issuer,
		keyID:      "ephemeral-" + uuid.NewString()[:8],
	}, nil
}

var _ ports.TokenSigner = (*JWTSigner)(nil)

func (s *JWTSigner) Sign(claims ports.AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, sessionClaims{
		ProviderID: claims.ProviderID.String(),
		Email:      claims.Email,
		SessionID:  claims.SessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.ProviderID.String(),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			ID:        uuid.NewString(),
		},
	})
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTSigner) ParseAndValidate(tokenStr string) (ports.AuthClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.publicKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return ports.AuthClaims{}, errors.New("invalid token")
	}

	providerID, err := uuid.Parse(claims.ProviderID)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("parse provider id claim: %w", err)
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("parse session id claim: %w", err)
	}

	out := ports.AuthClaims{
		ProviderID: providerID,
		Email:      claims.Email,
		SessionID:  sessionID,
	}
	if kid, ok := token.Header["kid"].(string); ok {
		out.KeyID = kid
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func parseRSAPrivate(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block in private key")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return key, nil
}

func parseRSAPublic(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block in public key")
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return key, nil
}

// ExportPublicPEM exposes the verification key for sibling services.
func (s *JWTSigner) ExportPublicPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(s.publicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// KeyID returns the signer's active key identifier.
func (s *JWTSigner) KeyID() string { return s.keyID }
