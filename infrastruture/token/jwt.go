// Package token issues and verifies the HMAC signed JWTs players present.
package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-chase/identity"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Registered and private claim names.
const (
	claimSubject  = "sub"
	claimUsername = "username"
	claimName     = "name"
	claimExpires  = "exp"
	claimIssued   = "iat"
	claimIssuer   = "iss"
)

// Token errors.
var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrUnexpectedSigningMethod = errors.New("unexpected signing method")
	ErrWrongIssuer             = errors.New("token issued by someone else")
	ErrMissingPlayer           = errors.New("token names no player")
)

var _ i.Tokenizer = &JwtService{}

// JwtService signs player claims with a shared secret and stamps them with
// its issuer.
type JwtService struct {
	secretKey []byte
	issuer    string
	now       func() time.Time
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       time.Now,
	}
}

// Issue implements i.Tokenizer. The player ID travels as the subject.
func (s *JwtService) Issue(claims identity.Claims, ttl time.Duration) (string, error) {
	if claims.PlayerID == uuid.Nil {
		return "", ErrMissingPlayer
	}

	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimSubject:  claims.PlayerID.String(),
		claimUsername: claims.Username,
		claimName:     claims.Name,
		claimExpires:  now.Add(ttl).Unix(),
		claimIssued:   now.Unix(),
		claimIssuer:   s.issuer,
	})
	return token.SignedString(s.secretKey)
}

// Verify implements i.Tokenizer.
func (s *JwtService) Verify(tokenString string) (identity.Claims, error) {
	token, err := jwt.Parse(tokenString, s.signingKey)
	if err != nil {
		return identity.Claims{}, err
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return identity.Claims{}, ErrInvalidToken
	}
	if !mc.VerifyIssuer(s.issuer, true) {
		return identity.Claims{}, ErrWrongIssuer
	}

	subject, _ := mc[claimSubject].(string)
	playerID, err := uuid.Parse(subject)
	if err != nil || playerID == uuid.Nil {
		return identity.Claims{}, ErrMissingPlayer
	}

	username, _ := mc[claimUsername].(string)
	name, _ := mc[claimName].(string)
	return identity.Claims{PlayerID: playerID, Username: username, Name: name}, nil
}

func (s *JwtService) signingKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigningMethod
	}
	return s.secretKey, nil
}
