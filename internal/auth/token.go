package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Claims carried by access and refresh tokens. Refresh tokens additionally
// carry a jti (RegisteredClaims.ID) bound to a Redis key for revocation and
// single use.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrExpiredAccessToken  = errors.New("expired access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const refreshKeyPrefix = "refresh:"

// TokenService issues and verifies HS256 bearer tokens. It is the identity
// provider boundary: given a bearer credential it yields a verified uid.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	rdb        *redis.Client
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, rdb *redis.Client) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		rdb:        rdb,
	}
}

// IssueAccess signs a short-lived access token for uid. Returns the token and
// its unix expiry.
func (s *TokenService) IssueAccess(uid string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)
	claims := &Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return token, expiresAt.Unix(), nil
}

// GenerateTokens issues an access/refresh pair. The refresh jti is stored in
// Redis so it can be revoked and used only once.
func (s *TokenService) GenerateTokens(ctx context.Context, uid string) (access, refresh string, expiresAt int64, err error) {
	access, expiresAt, err = s.IssueAccess(uid)
	if err != nil {
		return "", "", 0, err
	}

	now := time.Now()
	jti := uuid.NewString()
	refreshClaims := &Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.secret)
	if err != nil {
		return "", "", 0, err
	}

	if err := s.rdb.Set(ctx, refreshKeyPrefix+jti, uid, s.refreshTTL).Err(); err != nil {
		return "", "", 0, err
	}
	return access, refresh, expiresAt, nil
}

// ParseAccessToken verifies a bearer access token and returns its claims.
func (s *TokenService) ParseAccessToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredAccessToken
		}
		return nil, ErrInvalidAccessToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID == "" {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}

// RefreshTokens swaps a valid refresh token for a fresh pair. The old jti is
// consumed: refresh tokens are single use.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (string, string, int64, error) {
	token, err := jwt.ParseWithClaims(refreshToken, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", 0, ErrInvalidRefreshToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID == "" || claims.ID == "" {
		return "", "", 0, ErrInvalidRefreshToken
	}

	key := refreshKeyPrefix + claims.ID
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return "", "", 0, err
	}
	if exists == 0 {
		// Expired, revoked or already used.
		return "", "", 0, ErrInvalidRefreshToken
	}
	_ = s.rdb.Del(ctx, key).Err()

	return s.GenerateTokens(ctx, claims.UID)
}
