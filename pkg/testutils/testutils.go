// Package testutils provides helpers shared by package tests: a migrated
// in-memory database and fixtures for the catalog models.
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/migrations"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// NewDB returns a migrated in-memory database that is closed when the test
// finishes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateUser inserts an active user with the given role and password. The
// password is hashed with the minimum bcrypt cost to keep tests fast.
func CreateUser(ctx context.Context, t *testing.T, db *bun.DB, username, roleName, password string) *models.User {
	t.Helper()

	role := new(models.Role)
	err := db.NewSelect().
		Model(role).
		Where("name = ?", roleName).
		Scan(ctx)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		IsActive:     true,
	}
	_, err = db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	err = db.NewSelect().
		Model(user).
		Relation("Role").
		Relation("Role.Permissions").
		WherePK().
		Scan(ctx)
	require.NoError(t, err)

	return user
}

// CreateAuthor inserts an author.
func CreateAuthor(ctx context.Context, t *testing.T, db *bun.DB, firstName, lastName string) *models.Author {
	t.Helper()

	now := time.Now()
	author := &models.Author{
		CreatedAt: now,
		UpdatedAt: now,
		FirstName: firstName,
		LastName:  lastName,
	}
	_, err := db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)

	return author
}

// CreateBook inserts a book, optionally written by author.
func CreateBook(ctx context.Context, t *testing.T, db *bun.DB, title string, author *models.Author) *models.Book {
	t.Helper()

	now := time.Now()
	book := &models.Book{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Summary:   "Summary of " + title,
	}
	if author != nil {
		book.AuthorID = &author.ID
	}
	_, err := db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	return book
}

// CreateGenre inserts a genre.
func CreateGenre(ctx context.Context, t *testing.T, db *bun.DB, name string) *models.Genre {
	t.Helper()

	now := time.Now()
	genre := &models.Genre{CreatedAt: now, UpdatedAt: now, Name: name}
	_, err := db.NewInsert().Model(genre).Exec(ctx)
	require.NoError(t, err)

	return genre
}

// CreateLanguage inserts a language.
func CreateLanguage(ctx context.Context, t *testing.T, db *bun.DB, name string) *models.Language {
	t.Helper()

	now := time.Now()
	language := &models.Language{CreatedAt: now, UpdatedAt: now, Name: name}
	_, err := db.NewInsert().Model(language).Exec(ctx)
	require.NoError(t, err)

	return language
}

// InstanceOptions describes a book instance fixture.
type InstanceOptions struct {
	Status   string
	DueBack  *models.Date
	Borrower *models.User
	Imprint  string
}

// CreateInstance inserts a book instance of book. Status defaults to
// maintenance.
func CreateInstance(ctx context.Context, t *testing.T, db *bun.DB, book *models.Book, opts InstanceOptions) *models.BookInstance {
	t.Helper()

	status := opts.Status
	if status == "" {
		status = models.InstanceStatusMaintenance
	}

	now := time.Now()
	instance := &models.BookInstance{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		BookID:    book.ID,
		Imprint:   opts.Imprint,
		DueBack:   opts.DueBack,
		Status:    status,
	}
	if opts.Borrower != nil {
		instance.BorrowerID = &opts.Borrower.ID
	}
	_, err := db.NewInsert().Model(instance).Exec(ctx)
	require.NoError(t, err)

	return instance
}

// DatePtr returns a pointer to d.
func DatePtr(d models.Date) *models.Date {
	return &d
}
