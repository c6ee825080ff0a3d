package genres

import (
	"context"
	"testing"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGenre_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "  Fantasy "}
	require.NoError(t, svc.CreateGenre(ctx, genre))
	assert.Equal(t, "Fantasy", genre.Name)
	assert.NotZero(t, genre.ID)

	err := svc.CreateGenre(ctx, &models.Genre{Name: "fantasy"})
	assert.ErrorIs(t, err, errcodes.ValidationError("Genre Fantasy already exists"))
}

func TestListGenres_IncludesBookCounts(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()

	fantasy := testutils.CreateGenre(ctx, t, db, "Fantasy")
	testutils.CreateGenre(ctx, t, db, "Biography")
	book := testutils.CreateBook(ctx, t, db, "The Hobbit", nil)
	_, err := db.NewInsert().Model(&models.BookGenre{BookID: book.ID, GenreID: fantasy.ID}).Exec(ctx)
	require.NoError(t, err)

	genres, total, err := svc.ListGenresWithTotal(ctx, ListGenresOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, genres, 2)
	assert.Equal(t, "Biography", genres[0].Name)
	assert.Equal(t, 0, genres[0].BookCount)
	assert.Equal(t, "Fantasy", genres[1].Name)
	assert.Equal(t, 1, genres[1].BookCount)

	search := "anta"
	genres, err = svc.ListGenres(ctx, ListGenresOptions{Search: &search})
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, fantasy.ID, genres[0].ID)
}

func TestCountGenres_NameContainsIsCaseSensitive(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()

	testutils.CreateGenre(ctx, t, db, "Fiction")
	testutils.CreateGenre(ctx, t, db, "Romance")
	testutils.CreateGenre(ctx, t, db, "ONLINE")

	all, err := svc.CountGenres(ctx, CountGenresOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, all)

	on := "on"
	count, err := svc.CountGenres(ctx, CountGenresOptions{NameContains: &on})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteGenre_KeepsBooks(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := testutils.CreateGenre(ctx, t, db, "Poetry")
	book := testutils.CreateBook(ctx, t, db, "Leaves of Grass", nil)
	_, err := db.NewInsert().Model(&models.BookGenre{BookID: book.ID, GenreID: genre.ID}).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGenre(ctx, genre.ID))

	_, err = svc.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &genre.ID})
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))

	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	links, err := db.NewSelect().Model((*models.BookGenre)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, links)
}

func TestUpdateGenre_Rename(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := testutils.CreateGenre(ctx, t, db, "Sci Fi")
	testutils.CreateGenre(ctx, t, db, "Horror")

	genre.Name = "Science Fiction"
	require.NoError(t, svc.UpdateGenre(ctx, genre, UpdateGenreOptions{Columns: []string{"name"}}))

	reloaded, err := svc.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &genre.ID})
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", reloaded.Name)

	reloaded.Name = "horror"
	err = svc.UpdateGenre(ctx, reloaded, UpdateGenreOptions{Columns: []string{"name"}})
	assert.ErrorIs(t, err, errcodes.ValidationError("Genre Horror already exists"))
}
