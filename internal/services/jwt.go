package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"
)

// TokenKind розрізняє сесійний та refresh токени
type TokenKind string

const (
	TokenKindSession TokenKind = "session"
	TokenKindRefresh TokenKind = "refresh"
)

const sessionKeyInfo = "genuka-bridge/session"

// ErrWrongTokenKind токен підписаний правильно, але має інший тип
var ErrWrongTokenKind = errors.New("wrong token kind")

// SessionClaims представляє claims сесійних токенів
type SessionClaims struct {
	CompanyID string    `json:"companyId"`
	Type      TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// JWTService підписує та перевіряє сесійні токени
type JWTService interface {
	Sign(companyID string, kind TokenKind, ttl time.Duration) (string, time.Time, error)
	Verify(tokenString string, kind TokenKind) (*SessionClaims, error)
}

// jwtService реалізація JWTService
type jwtService struct {
	key []byte
	now func() time.Time
}

// NewJWTService створює новий JWT сервіс з ключем підпису
func NewJWTService(key []byte, now func() time.Time) JWTService {
	if now == nil {
		now = time.Now
	}
	return &jwtService{
		key: key,
		now: now,
	}
}

// DeriveSessionKey виводить ключ підпису сесій з секрету через HKDF-SHA256
func DeriveSessionKey(secret string) ([]byte, error) {
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return key, nil
}

// Sign створює HS256 токен для компанії
func (j *jwtService) Sign(companyID string, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(ttl)

	claims := SessionClaims{
		CompanyID: companyID,
		Type:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return signed, expiresAt, nil
}

// Verify перевіряє підпис, термін дії та тип токена.
// Токен з exp == now вважається простроченим.
func (j *jwtService) Verify(tokenString string, kind TokenKind) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logrus.WithField("kind", kind).Debug("Session token expired")
		} else {
			logrus.WithError(err).WithField("kind", kind).Error("Session token verification failed")
		}
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid %s token", kind)
	}

	if claims.Type != kind {
		logrus.WithFields(logrus.Fields{
			"expected": kind,
			"actual":   claims.Type,
		}).Warn("Session token kind mismatch")
		return nil, ErrWrongTokenKind
	}

	if claims.CompanyID == "" {
		return nil, fmt.Errorf("%s token has no company id", kind)
	}

	return claims, nil
}
