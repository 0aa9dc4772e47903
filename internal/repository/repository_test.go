package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pdfhub/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Project{}))
	return db
}

func TestUserRepository_UniqueIndexes(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{
		Username:     "alice01",
		PasswordHash: "hash",
		Email:        "alice@example.com",
	}))

	err := repo.Create(ctx, &model.User{
		Username:     "alice01",
		PasswordHash: "hash",
		Email:        "other@example.com",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = repo.Create(ctx, &model.User{
		Username:     "bobby99",
		PasswordHash: "hash",
		Email:        "alice@example.com",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_FindByUsernameOrEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{
		Username:     "alice01",
		PasswordHash: "hash",
		Email:        "alice@example.com",
	}))

	byUsername, err := repo.FindByUsernameOrEmail(ctx, "alice01", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice01", byUsername.Username)

	byEmail, err := repo.FindByUsernameOrEmail(ctx, "newuser1", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byEmail.Email)

	_, err = repo.FindByUsernameOrEmail(ctx, "newuser1", "new@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindByUsername_CaseSensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{
		Username:     "alice01",
		PasswordHash: "hash",
		Email:        "alice@example.com",
	}))

	found, err := repo.FindByUsername(ctx, "alice01")
	require.NoError(t, err)
	assert.Equal(t, "alice01", found.Username)

	_, err = repo.FindByUsername(ctx, "ALICE01")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepository(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t))
	ctx := context.Background()

	first := &model.Project{Title: "Report", PDFPath: "uploads/a.pdf", Owner: "alice01"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	second := &model.Project{Title: "Slides", PDFPath: "uploads/b.pdf", Owner: "bobby99"}
	require.NoError(t, repo.Create(ctx, second))

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Report", found.Title)
	assert.Equal(t, "alice01", found.Owner)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
