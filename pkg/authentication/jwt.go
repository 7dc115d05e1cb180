package authentication

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "residence"

// AccessClaim grants read access to the bookings of Subject (an email address)
type AccessClaim struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

type JWT struct {
	secret []byte
}

func NewJWT(key string) (*JWT, error) {
	if key == "" {
		return nil, errors.New("jwt key must not be empty")
	}
	return &JWT{
		secret: []byte(key),
	}, nil
}

func GenerateKey(length int) (string, error) {
	key := make([]byte, length)
	_, err := rand.Read(key)
	if err != nil {
		return "", errors.Join(errors.New("err when generating secret key"), err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// NewToken signs a token for subject with the given scope, valid for d.
func (j *JWT) NewToken(subject, scope string, d time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaim{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	result, err := token.SignedString(j.secret)
	if err != nil {
		return "", errors.Join(errors.New("err when signing the token"), err)
	}
	return result, nil
}

// Parse validates input and returns its subject if it carries scope.
func (j *JWT) Parse(input, scope string) (string, error) {
	token, err := jwt.ParseWithClaims(input, &AccessClaim{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", errors.Join(errors.New("err when parsing token"), err)
	}
	claims, ok := token.Claims.(*AccessClaim)
	if !ok || claims.Scope != scope || claims.Subject == "" {
		return "", errors.New("invalid claim")
	}
	return claims.Subject, nil
}
