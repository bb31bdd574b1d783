package service

import (
	"Doodly/config"
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/jwt"
	"Doodly/pkg/response"
	"Doodly/pkg/snowflake"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		Config:    &config.Config{Jwt: &config.Jwt{Secret: "test-secret"}},
		ParentDAO: dao.NewParentDAO(db),
		ChildDAO:  dao.NewChildDAO(db),
	}
}

func TestChildLoginHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	require.NoError(t, err)
	child := &models.Child{
		ID:       uint64(snowflake.GenID()),
		ParentID: 1,
		Username: "mia_draws",
		AgeGroup: models.AgeGroupKids,
		PinHash:  string(hash),
	}
	require.NoError(t, db.Create(child).Error)

	got, access, refresh, err := svc.ChildLogin(context.Background(), "mia_draws", "4321")
	require.NoError(t, err)
	assert.Equal(t, child.ID, got.ID)

	claims, err := jwt.ParseToken([]byte("test-secret"), jwt.TypeAccess, access)
	require.NoError(t, err)
	assert.Equal(t, child.ID, claims.UserID)
	assert.Equal(t, jwt.AudienceChild, claims.Audience)

	refreshClaims, err := jwt.ParseToken([]byte("test-secret"), jwt.TypeRefresh, refresh)
	require.NoError(t, err)
	assert.Equal(t, jwt.AudienceChild, refreshClaims.Audience)
}

func TestChildLoginGenericError(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	require.NoError(t, db.Create(&models.Child{
		ID:       uint64(snowflake.GenID()),
		ParentID: 1,
		Username: "mia_draws",
		AgeGroup: models.AgeGroupKids,
		PinHash:  string(hash),
	}).Error)

	// unknown user and wrong PIN must be indistinguishable
	_, _, _, errUser := svc.ChildLogin(context.Background(), "nobody", "4321")
	_, _, _, errPin := svc.ChildLogin(context.Background(), "mia_draws", "0000")

	var beUser, bePin *response.BizError
	require.ErrorAs(t, errUser, &beUser)
	require.ErrorAs(t, errPin, &bePin)
	assert.Equal(t, http.StatusUnauthorized, beUser.Code)
	assert.Equal(t, beUser.Msg, bePin.Msg)
}

func TestRefreshRotatesNearExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	secret := []byte("test-secret")

	// fresh refresh token: comes back unchanged
	longLived, err := jwt.GenerateToken(secret, 42, jwt.AudienceParent, jwt.TypeRefresh, refreshTTL)
	require.NoError(t, err)
	access, same, err := svc.Refresh(context.Background(), longLived)
	require.NoError(t, err)
	assert.Equal(t, longLived, same)

	claims, err := jwt.ParseToken(secret, jwt.TypeAccess, access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)

	// near-expiry refresh token: rotated
	shortLived, err := jwt.GenerateToken(secret, 42, jwt.AudienceParent, jwt.TypeRefresh, refreshRotation/2)
	require.NoError(t, err)
	_, rotated, err := svc.Refresh(context.Background(), shortLived)
	require.NoError(t, err)
	assert.NotEqual(t, shortLived, rotated)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	access, err := jwt.GenerateToken([]byte("test-secret"), 42, jwt.AudienceParent, jwt.TypeAccess, accessTTL)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), access)
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusUnauthorized, be.Code)
}
