package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/niklaus/b2b-portal/internal/platform/apperr"
)

func newTestService() Service {
	return &service{repo: NewMemoryRepository(), log: zap.NewNop(), bcryptCost: bcrypt.MinCost}
}

func TestRegister(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ana Souza",
		Category: "Barbearia",
		Email:    "  Ana@Salon.com ",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@salon.com", a.Email)
	assert.Equal(t, RoleRepresentative, a.Role)
	assert.Empty(t, a.UnitIDs)
	assert.True(t, a.Pending())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret")))

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "ANA@salon.com", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := map[string]RegisterRequest{
		"missing name":     {Email: "a@b.com", Password: "x"},
		"bad email":        {Name: "A", Email: "not-an-email", Password: "x"},
		"missing password": {Name: "A", Email: "a@b.com"},
		"unknown category": {Name: "A", Email: "a@b.com", Password: "x", Category: "Padaria"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestListAccounts_Filters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.UpsertAccount(ctx, "admin", UpsertRequest{Name: "Admin", Email: "admin@niklaus.com.br", Password: "admin", Role: RoleAdmin})
	require.NoError(t, err)
	_, err = svc.UpsertAccount(ctx, "rep", UpsertRequest{Name: "Rep", Email: "rep@test.com", Password: "123", UnitIDs: []string{"c1"}})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Name: "New", Email: "new@test.com", Password: "123"})
	require.NoError(t, err)

	all, err := svc.ListAccounts(ctx, FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := svc.ListAccounts(ctx, FilterPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "new@test.com", pending[0].Email)

	active, err := svc.ListAccounts(ctx, FilterActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "rep", active[0].ID)

	_, err = svc.ListAccounts(ctx, "archived")
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestUpsertAccount_KeepsPasswordWhenOmitted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.UpsertAccount(ctx, "u2", UpsertRequest{Name: "Rep", Email: "rep@test.com", Password: "123"})
	require.NoError(t, err)

	a, err := svc.UpsertAccount(ctx, "u2", UpsertRequest{Name: "Rep Renamed", Email: "rep@test.com", UnitIDs: []string{"c1", "c1", "c2"}})
	require.NoError(t, err)
	assert.Equal(t, "Rep Renamed", a.Name)
	assert.Equal(t, []string{"c1", "c2"}, a.UnitIDs)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("123")))

	_, err = svc.UpsertAccount(ctx, "u3", UpsertRequest{Name: "No Pass", Email: "nopass@test.com"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.UpsertAccount(ctx, "u4", UpsertRequest{Name: "Dup", Email: "rep@test.com", Password: "x"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.UpsertAccount(ctx, "u5", UpsertRequest{Name: "Bad", Email: "bad@test.com", Password: "x", Role: "OWNER"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAssignUnits(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterRequest{Name: "New", Email: "new@test.com", Password: "123"})
	require.NoError(t, err)

	a, err = svc.AssignUnits(ctx, a.ID, []string{"c2", " ", "c3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c3"}, a.UnitIDs)
	assert.True(t, a.CanAccess("c3"))
	assert.False(t, a.CanAccess("c1"))

	_, err = svc.AssignUnits(ctx, "missing", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
