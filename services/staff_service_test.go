package services

import (
	"context"
	"testing"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStaffService(t *testing.T) (*StaffService, *utils.TokenManager) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	svc := NewStaffService(database.NewStaffStore(database.NewTestDB(t)), tokens).WithHashCost(bcrypt.MinCost)
	return svc, tokens
}

func TestStaffRegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newStaffService(t)

	user, err := svc.Register(ctx, RegisterInput{Name: "Salma", Email: " Salma@Bites.test ", Password: "secret1", Role: "Delivery"})
	require.NoError(t, err)
	assert.Equal(t, "salma@bites.test", user.Email)
	assert.Equal(t, models.RoleDelivery, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "salma@bites.test", Password: "secret2", Role: "kitchen"})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	token, logged, err := svc.Login(ctx, "SALMA@bites.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "delivery", claims.Role)
	assert.Equal(t, user.ID, claims.StaffID)

	_, _, err = svc.Login(ctx, "salma@bites.test", "wrong")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	_, _, err = svc.Login(ctx, "nobody@bites.test", "secret1")
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))

	svc.Logout(token)
	_, err = tokens.ParseToken(token)
	assert.Error(t, err)
}

func TestStaffRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStaffService(t)

	tests := []RegisterInput{
		{Email: "a@b.c", Password: "secret1"},
		{Name: "A", Email: "a@b.c", Password: "123"},
		{Name: "A", Email: "a@b.c", Password: "secret1", Role: "chef"},
		{Name: "A", Email: "a@b.c", Password: "secret1", Role: "guest"},
	}
	for _, in := range tests {
		_, err := svc.Register(ctx, in)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "input %+v", in)
	}

	user, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleWaiter, user.Role)
}
