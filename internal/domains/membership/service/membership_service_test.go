package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/membership/repository"
	"library-backend/internal/domains/membership/service"
)

func newService() service.ServiceInterface {
	return service.NewService(repository.NewMemoryRepository())
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := newService()

	member, err := svc.Register(context.Background(), model.RegisterMemberRequest{
		FullName: "  Grace Hopper ",
		Email:    " Grace.Hopper@Example.COM ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", member.FullName)
	assert.Equal(t, "grace.hopper@example.com", member.Email)
	assert.NotZero(t, member.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterMemberRequest{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
	})
	require.NoError(t, err)

	// Same address in different casing counts as the same member.
	_, err = svc.Register(ctx, model.RegisterMemberRequest{
		FullName: "Someone Else",
		Email:    "GRACE@example.com",
	})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestGetMember(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Register(ctx, model.RegisterMemberRequest{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
	})
	require.NoError(t, err)

	got, err := svc.GetMember(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Grace Hopper", got.FullName)

	_, err = svc.GetMember(ctx, created.ID+1)
	require.ErrorIs(t, err, model.ErrMemberNotFound)
}

func TestExists(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Register(ctx, model.RegisterMemberRequest{
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
	})
	require.NoError(t, err)

	exists, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListMembers_Pagination(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		_, err := svc.Register(ctx, model.RegisterMemberRequest{FullName: "Member", Email: email})
		require.NoError(t, err)
	}

	page, err := svc.ListMembers(ctx, model.ListMembersRequest{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)
}
