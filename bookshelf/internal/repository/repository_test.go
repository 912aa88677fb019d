package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/errs"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newTestRepo(t *testing.T, ids ...string) *repository {
	t.Helper()
	r := NewRepository(zap.NewNop())
	for _, id := range ids {
		require.NoError(t, r.Create(context.Background(), model.Book{ID: id, Name: "book " + id}))
	}
	return r
}

func ids(books []model.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestRepository_ListOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(t, "c", "a", "b")

	all, err := r.List(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, ids(all))

	some, err := r.List(ctx, func(b model.Book) bool { return b.ID != "a" })
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b"}, ids(some))

	empty, err := newTestRepo(t).List(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestRepository_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(t, "a")

	b, err := r.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "book a", b.Name)

	_, err = r.Get(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(t, "a", "b")

	got, err := r.Update(ctx, "b", func(b *model.Book) {
		b.Name = "renamed"
		b.ID = "hijack"
	})
	require.NoError(t, err)
	require.Equal(t, "b", got.ID)
	require.Equal(t, "renamed", got.Name)

	stored, err := r.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, got, stored)

	_, err = r.Update(ctx, "missing", func(b *model.Book) {})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(t, "a", "b", "c")

	require.NoError(t, r.Delete(ctx, "b"))
	require.ErrorIs(t, r.Delete(ctx, "b"), errs.ErrNotFound)

	all, err := r.List(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, ids(all))
}

func TestRepository_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(t)

	const n = 100
	var g errgroup.Group
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("id-%d", i)
		g.Go(func() error {
			if err := r.Create(ctx, model.Book{ID: id}); err != nil {
				return err
			}
			if _, err := r.Update(ctx, id, func(b *model.Book) { b.ReadPage++ }); err != nil {
				return err
			}
			_, err := r.List(ctx, nil)
			return err
		})
	}
	require.NoError(t, g.Wait())

	all, err := r.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, n)
	for _, b := range all {
		require.Equal(t, 1, b.ReadPage)
	}
}
