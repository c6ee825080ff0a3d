package roles

import (
	"context"
	"testing"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SeededRoles(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()

	testutils.CreateUser(ctx, t, db, "marian", models.RoleLibrarian, "password123")
	testutils.CreateUser(ctx, t, db, "reader", models.RoleMember, "password123")
	testutils.CreateUser(ctx, t, db, "another", models.RoleMember, "password123")

	roles, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)

	assert.Equal(t, models.RoleLibrarian, roles[0].Name)
	assert.Equal(t, 1, roles[0].UserCount)
	assert.True(t, roles[0].HasPermission(models.PermissionCanMarkReturned))

	assert.Equal(t, models.RoleMember, roles[1].Name)
	assert.Equal(t, 2, roles[1].UserCount)
	assert.False(t, roles[1].HasPermission(models.PermissionCanMarkReturned))
}

func TestRetrieve(t *testing.T) {
	t.Parallel()

	svc := NewService(testutils.NewDB(t))
	ctx := context.Background()

	name := models.RoleLibrarian
	role, err := svc.Retrieve(ctx, RetrieveOptions{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, role.Name)

	missing := 999
	_, err = svc.Retrieve(ctx, RetrieveOptions{ID: &missing})
	assert.ErrorIs(t, err, errcodes.NotFound("Role"))
}
