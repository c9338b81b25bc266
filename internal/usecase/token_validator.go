package usecase

import (
	"field-rental/internal/domain/user"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/pkg/jwt"

	"github.com/google/uuid"
)

// ErrTokenExpired lets callers tell a stale session apart from a forged or malformed token.
var ErrTokenExpired = errs.New("token expired")

// Identity is the caller as asserted by a bearer token issued by the account service.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(tokenString string) (Identity, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if errs.Is(err, jwt.ErrExpiredToken) {
		return Identity{}, errs.Mark(err, ErrTokenExpired)
	}
	if err != nil {
		return Identity{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, err
	}
	// Unknown roles are rejected, never downgraded.
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, errs.Wrap(jwt.ErrInvalidToken, "role "+claims.Role)
	}
	return Identity{UserID: userID, Role: role}, nil
}
