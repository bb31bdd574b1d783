package service

import (
	"Doodly/config"
	"Doodly/dao"
	"Doodly/dao/cache"
	"Doodly/models"
	"Doodly/pkg/jwt"
	"Doodly/pkg/log"
	"Doodly/pkg/mailer"
	"Doodly/pkg/response"
	"Doodly/pkg/snowflake"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTTL       = time.Hour
	childAccessTTL  = 24 * time.Hour
	refreshTTL      = 720 * time.Hour
	refreshRotation = 72 * time.Hour
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	RequestParentCode(ctx context.Context, email string) error
	VerifyParentCode(ctx context.Context, email, code string) (*models.Parent, string, string, error)
	ChildLogin(ctx context.Context, username, pin string) (*models.Child, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type AuthService struct {
	Config    *config.Config
	ParentDAO *dao.ParentDAO
	ChildDAO  *dao.ChildDAO
	Otp       *cache.OtpStore
	Mailer    mailer.Mailer
}

// RequestParentCode issues a 6-digit code. Errors from the mail transport
// surface; an unknown address does not (no account enumeration).
func (s *AuthService) RequestParentCode(ctx context.Context, email string) error {
	code, err := randomCode(6)
	if err != nil {
		return err
	}
	if err := s.Otp.Save(ctx, email, code); err != nil {
		return err
	}
	if err := s.Mailer.SendSignInCode(email, code); err != nil {
		return response.NewError(http.StatusServiceUnavailable, "could not send sign-in code")
	}
	return nil
}

// VerifyParentCode burns the code and signs the parent in, creating the
// account on first use.
func (s *AuthService) VerifyParentCode(ctx context.Context, email, code string) (*models.Parent, string, string, error) {
	if err := s.Otp.Consume(ctx, email, code); err != nil {
		if errors.Is(err, cache.ErrCodeMismatch) {
			return nil, "", "", response.NewError(http.StatusUnauthorized, "wrong or expired code")
		}
		return nil, "", "", err
	}

	parent, err := s.ParentDAO.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if parent == nil {
		parent = &models.Parent{
			ID:    uint64(snowflake.GenID()),
			Email: email,
		}
		if err := s.ParentDAO.Create(ctx, parent); err != nil {
			return nil, "", "", err
		}
		log.L.Info("parent account created", zap.Uint64("parent_id", parent.ID))
	}

	secret := []byte(s.Config.Jwt.Secret)
	access, err := jwt.GenerateToken(secret, parent.ID, jwt.AudienceParent, jwt.TypeAccess, accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := jwt.GenerateToken(secret, parent.ID, jwt.AudienceParent, jwt.TypeRefresh, refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return parent, access, refresh, nil
}

// ChildLogin checks username + PIN. One generic error for both unknown user
// and bad PIN.
func (s *AuthService) ChildLogin(ctx context.Context, username, pin string) (*models.Child, string, string, error) {
	child, err := s.ChildDAO.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", "", err
	}
	if child == nil {
		return nil, "", "", response.NewError(http.StatusUnauthorized, "wrong username or PIN")
	}
	if bcrypt.CompareHashAndPassword([]byte(child.PinHash), []byte(pin)) != nil {
		return nil, "", "", response.NewError(http.StatusUnauthorized, "wrong username or PIN")
	}

	secret := []byte(s.Config.Jwt.Secret)
	access, err := jwt.GenerateToken(secret, child.ID, jwt.AudienceChild, jwt.TypeAccess, childAccessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := jwt.GenerateToken(secret, child.ID, jwt.AudienceChild, jwt.TypeRefresh, refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return child, access, refresh, nil
}

// Refresh exchanges a refresh token for a fresh access token, rotating the
// refresh token itself when it nears expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	secret := []byte(s.Config.Jwt.Secret)
	claims, err := jwt.ParseToken(secret, jwt.TypeRefresh, refreshToken)
	if err != nil {
		return "", "", response.NewError(http.StatusUnauthorized, "invalid refresh token")
	}

	ttl := accessTTL
	if claims.Audience == jwt.AudienceChild {
		ttl = childAccessTTL
	}
	access, err := jwt.GenerateToken(secret, claims.UserID, claims.Audience, jwt.TypeAccess, ttl)
	if err != nil {
		return "", "", err
	}

	newRefresh := refreshToken
	if jwt.ShouldRotateRefreshToken(claims, refreshRotation) {
		newRefresh, err = jwt.GenerateToken(secret, claims.UserID, claims.Audience, jwt.TypeRefresh, refreshTTL)
		if err != nil {
			return "", "", err
		}
	}
	return access, newRefresh, nil
}

func randomCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
