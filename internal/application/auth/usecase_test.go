package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/testutil"
	"github.com/jhoicas/stasha-pos/pkg/jwt"
)

func newAuth(s *testutil.Store) *AuthUseCase {
	return NewAuthUseCase(s.Profiles(), s.Organizations(), s.TxRunner(), JWTConfig{
		Secret: testutil.TestJWTSecret, ExpMinutes: 60, Issuer: "stasha-pos-test",
	})
}

func TestSignup_CreaOrganizacionYOwner(t *testing.T) {
	s := testutil.NewStore()
	uc := newAuth(s)

	out, err := uc.Signup(context.Background(), dto.SignupRequest{
		OrganizationName: "Mama Oliech", FullName: "Jane Wanjiru", Email: "Jane@Example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", out.User.Email)
	assert.Equal(t, entity.RoleOwner, out.User.Role)
	require.NotNil(t, out.Organization)
	assert.Equal(t, "Mama Oliech", out.Organization.Name)
	assert.Equal(t, entity.DefaultReceiptFooter, out.Organization.ReceiptFooter)

	claims, err := jwt.Parse(testutil.TestJWTSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Organization.ID, claims.OrgID)
	assert.Equal(t, entity.RoleOwner, claims.Role)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Existente")
	testutil.SeedProfile(t, s, org.ID, "taken@example.com", entity.RoleWaiter)

	_, err := newAuth(s).Signup(context.Background(), dto.SignupRequest{
		OrganizationName: "Nueva", FullName: "X", Email: "taken@example.com", Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_PasswordCorto(t *testing.T) {
	_, err := newAuth(testutil.NewStore()).Signup(context.Background(), dto.SignupRequest{
		OrganizationName: "Nueva", FullName: "X", Email: "a@b.com", Password: "123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	testutil.SeedProfile(t, s, org.ID, "waiter@example.com", entity.RoleWaiter)
	uc := newAuth(s)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "waiter@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWaiter, out.User.Role)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "waiter@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_SinOrganizacionProhibido(t *testing.T) {
	s := testutil.NewStore()
	testutil.SeedProfile(t, s, "", "removed@example.com", "")

	_, err := newAuth(s).Login(context.Background(), dto.LoginRequest{Email: "removed@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcceptInvite_ActivaPerfil(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	ctx := context.Background()
	require.NoError(t, s.Profiles().Create(ctx, &entity.Profile{
		ID: "p-1", OrgID: org.ID, Email: "new@example.com", Role: entity.RoleBarman,
		Status: entity.ProfileStatusInvited, InviteToken: "tok-123",
	}))
	uc := newAuth(s)

	out, err := uc.AcceptInvite(ctx, dto.AcceptInviteRequest{Token: "tok-123", FullName: "Otieno", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStatusActive, out.User.Status)
	assert.Equal(t, "Otieno", out.User.FullName)

	p, _ := s.Profiles().GetByID(ctx, "p-1")
	assert.Empty(t, p.InviteToken, "el token se consume")

	_, err = uc.AcceptInvite(ctx, dto.AcceptInviteRequest{Token: "tok-123", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMe(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	p := testutil.SeedProfile(t, s, org.ID, "owner@example.com", entity.RoleOwner)

	out, err := newAuth(s).Me(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Email, out.User.Email)
	require.NotNil(t, out.Organization)
	assert.Equal(t, "Bar", out.Organization.Name)
}
