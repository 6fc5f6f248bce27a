package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rbac-api/internal/domain"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
	"github.com/jhoicas/rbac-api/internal/infrastructure/memory"
)

func newAccount(id, username, email string, role entity.Role, createdAt time.Time) *entity.Account {
	return &entity.Account{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Name:         "Cuenta " + username,
		Email:        email,
		Role:         role,
		IsActive:     true,
		CreatedAt:    createdAt,
	}
}

func TestSave_UnicidadUsernameYEmail(t *testing.T) {
	repo := memory.NewAccountRepository()
	now := time.Now()
	require.NoError(t, repo.Save(newAccount("1", "alice", "a@x.com", entity.RoleViewer, now)))

	err := repo.Save(newAccount("2", "alice", "otro@x.com", entity.RoleViewer, now))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = repo.Save(newAccount("3", "bob", "a@x.com", entity.RoleViewer, now))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSave_ReemplazoPorIDNoEsDuplicado(t *testing.T) {
	repo := memory.NewAccountRepository()
	now := time.Now()
	require.NoError(t, repo.Save(newAccount("1", "alice", "a@x.com", entity.RoleViewer, now)))

	updated := newAccount("1", "alice", "a@x.com", entity.RoleManager, now)
	require.NoError(t, repo.Save(updated), "re-guardar la misma cuenta no colisiona consigo misma")

	got, err := repo.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, got.Role)
}

func TestSave_GuardaCopia(t *testing.T) {
	repo := memory.NewAccountRepository()
	account := newAccount("1", "alice", "a@x.com", entity.RoleViewer, time.Now())
	require.NoError(t, repo.Save(account))

	// Mutar el struct del caller no debe afectar lo persistido.
	account.Name = "mutada"
	got, err := repo.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, "Cuenta alice", got.Name)
}

func TestLookups_NoExiste(t *testing.T) {
	repo := memory.NewAccountRepository()

	got, err := repo.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByUsername("nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := repo.ExistsByEmail("nope@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListAll_OrdenDescendentePorCreatedAt(t *testing.T) {
	repo := memory.NewAccountRepository()
	base := time.Now()
	require.NoError(t, repo.Save(newAccount("1", "vieja", "1@x.com", entity.RoleViewer, base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(newAccount("2", "media", "2@x.com", entity.RoleViewer, base.Add(-time.Hour))))
	require.NoError(t, repo.Save(newAccount("3", "nueva", "3@x.com", entity.RoleViewer, base)))

	list, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "nueva", list[0].Username)
	assert.Equal(t, "media", list[1].Username)
	assert.Equal(t, "vieja", list[2].Username)
}

func TestSearch_SubstringCaseInsensitive(t *testing.T) {
	repo := memory.NewAccountRepository()
	now := time.Now()
	require.NoError(t, repo.Save(newAccount("1", "alice", "a@x.com", entity.RoleViewer, now)))
	require.NoError(t, repo.Save(newAccount("2", "bob", "b@x.com", entity.RoleViewer, now)))

	found, err := repo.Search("ALI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)
}

func TestCountByRole(t *testing.T) {
	repo := memory.NewAccountRepository()
	now := time.Now()
	require.NoError(t, repo.Save(newAccount("1", "a1", "1@x.com", entity.RoleAdministrator, now)))
	require.NoError(t, repo.Save(newAccount("2", "a2", "2@x.com", entity.RoleAdministrator, now)))
	require.NoError(t, repo.Save(newAccount("3", "v1", "3@x.com", entity.RoleViewer, now)))

	count, err := repo.CountByRole(entity.RoleAdministrator)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	require.NoError(t, repo.Delete("1"))
	count, err = repo.CountByRole(entity.RoleAdministrator)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
