package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/testutil"
)

func TestInvite_UsuarioExistenteSeAgrega(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	p := testutil.SeedProfile(t, s, "", "waiter@example.com", entity.RoleWaiter)

	out, err := NewTeamUseCase(s.Profiles()).Invite(context.Background(), org.ID, dto.InviteRequest{
		Email: "Waiter@Example.com", Role: entity.RoleBarman,
	})
	require.NoError(t, err)
	assert.Equal(t, MsgMemberAdded, out.Message)
	assert.False(t, out.Invited)
	assert.Equal(t, p.ID, out.Member.ID)
	assert.Equal(t, org.ID, out.Member.OrgID)
	assert.Equal(t, entity.RoleBarman, out.Member.Role)
}

func TestInvite_EmailNuevoCreaInvitacion(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")

	out, err := NewTeamUseCase(s.Profiles()).Invite(context.Background(), org.ID, dto.InviteRequest{
		Email: "nuevo@example.com", Role: entity.RoleKitchenMaster,
	})
	require.NoError(t, err)
	assert.Equal(t, MsgInviteSent, out.Message)
	assert.True(t, out.Invited)
	assert.NotEmpty(t, out.InviteToken)
	assert.Equal(t, entity.ProfileStatusInvited, out.Member.Status)

	p, err := s.Profiles().GetByInviteToken(context.Background(), out.InviteToken)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "nuevo@example.com", p.Email)
}

func TestInvite_RolesInvalidos(t *testing.T) {
	s := testutil.NewStore()
	uc := NewTeamUseCase(s.Profiles())

	_, err := uc.Invite(context.Background(), "org-1", dto.InviteRequest{Email: "a@b.com", Role: entity.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Invite(context.Background(), "org-1", dto.InviteRequest{Email: "a@b.com", Role: "chef"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Invite(context.Background(), "org-1", dto.InviteRequest{Email: "sin-arroba", Role: entity.RoleWaiter})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvite_OwnerDeOtraOrganizacion(t *testing.T) {
	s := testutil.NewStore()
	testutil.SeedProfile(t, s, "org-2", "owner@example.com", entity.RoleOwner)

	_, err := NewTeamUseCase(s.Profiles()).Invite(context.Background(), "org-1", dto.InviteRequest{
		Email: "owner@example.com", Role: entity.RoleWaiter,
	})
	assert.ErrorIs(t, err, domain.ErrOwnerImmutable)
}

func TestUpdateRoleYRemove_OwnerInmutable(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	owner := testutil.SeedProfile(t, s, org.ID, "owner@example.com", entity.RoleOwner)
	waiter := testutil.SeedProfile(t, s, org.ID, "waiter@example.com", entity.RoleWaiter)
	uc := NewTeamUseCase(s.Profiles())
	ctx := context.Background()

	_, err := uc.UpdateRole(ctx, org.ID, owner.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrOwnerImmutable)
	assert.ErrorIs(t, uc.Remove(ctx, org.ID, owner.ID), domain.ErrOwnerImmutable)

	out, err := uc.UpdateRole(ctx, org.ID, waiter.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	require.NoError(t, uc.Remove(ctx, org.ID, waiter.ID))
	list, err := uc.List(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, uc.Remove(ctx, "otra-org", owner.ID), domain.ErrNotFound)
}
