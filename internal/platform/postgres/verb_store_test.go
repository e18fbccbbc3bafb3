//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/migrations"
	"github.com/phrazzld/verbos-api/internal/platform/postgres"
	"github.com/phrazzld/verbos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DATABASE_URL, migrates it and empties the verbs table.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectPostgres, nil))

	_, err = db.ExecContext(ctx, `DELETE FROM verbs`)
	require.NoError(t, err)
	return db
}

func TestPostgresVerbStore_CRUD(t *testing.T) {
	db := openTestDB(t)
	s := postgres.NewPostgresVerbStore(db, nil)
	ctx := context.Background()

	tener := &domain.Verb{
		Infinitive:         "tener",
		Meaning:            "to have",
		Category:           domain.CategoryIrregular,
		IrregularOverrides: map[domain.Person]string{domain.PersonYo: "tengo"},
	}
	pedir := &domain.Verb{
		Infinitive: "pedir",
		Category:   domain.CategoryStemChanging,
		StemChange: &domain.StemChange{From: "e", To: "i"},
	}

	require.NoError(t, s.Create(ctx, tener))
	require.NoError(t, s.Create(ctx, pedir))
	assert.ErrorIs(t, s.Create(ctx, tener), store.ErrVerbExists)

	got, err := s.Get(ctx, "tener")
	require.NoError(t, err)
	assert.Equal(t, tener, got)

	pedir.Mastery = 45
	pedir.CompletedModes.Quiz = true
	require.NoError(t, s.Update(ctx, pedir))

	verbs, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Verb{tener, pedir}, verbs)

	require.NoError(t, s.Delete(ctx, "tener"))
	assert.ErrorIs(t, s.Delete(ctx, "tener"), store.ErrVerbNotFound)
	_, err = s.Get(ctx, "tener")
	assert.ErrorIs(t, err, store.ErrVerbNotFound)
	assert.ErrorIs(t, s.Update(ctx, tener), store.ErrVerbNotFound)
}

func TestPostgresVerbStore_Save(t *testing.T) {
	db := openTestDB(t)
	s := postgres.NewPostgresVerbStore(db, nil)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &domain.Verb{Infinitive: "leer", Category: domain.CategoryRegular}))

	collection := []*domain.Verb{
		{Infinitive: "vivir", Category: domain.CategoryRegular, Mastery: 100,
			CompletedModes: domain.CompletedModes{Quiz: true, Table: true, Speech: true}},
		{Infinitive: "comer", Category: domain.CategoryRegular},
	}
	require.NoError(t, s.Save(ctx, collection))

	verbs, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, collection, verbs)

	dup := []*domain.Verb{collection[0], collection[0]}
	assert.ErrorIs(t, s.Save(ctx, dup), store.ErrVerbExists)

	verbs, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, verbs, 2, "a rejected save leaves the collection untouched")
}
