package repository

import (
	"context"
	"sync"

	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/errs"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/model"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, book model.Book) error
	List(ctx context.Context, match func(model.Book) bool) ([]model.Book, error)
	Get(ctx context.Context, id string) (model.Book, error)
	Update(ctx context.Context, id string, apply func(b *model.Book)) (model.Book, error)
	Delete(ctx context.Context, id string) error
}

// repository keeps books in insertion order. Lookups are linear scans on id.
type repository struct {
	mu    sync.RWMutex
	books []model.Book
	log   *zap.Logger
}

func NewRepository(log *zap.Logger) *repository {
	return &repository{
		books: make([]model.Book, 0),
		log:   log.Named("repo"),
	}
}

func (r *repository) Create(_ context.Context, book model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = append(r.books, book)
	r.log.Debug("Create", zap.String("id", book.ID), zap.Int("size", len(r.books)))
	return nil
}

// List returns copies of the books accepted by match, in insertion order.
// A nil match accepts everything.
func (r *repository) List(_ context.Context, match func(model.Book) bool) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		if match == nil || match(b) {
			books = append(books, b)
		}
	}
	return books, nil
}

func (r *repository) Get(_ context.Context, id string) (model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return model.Book{}, errs.ErrNotFound
	}
	return r.books[idx], nil
}

// Update runs apply on the stored book while holding the write lock.
// apply must not change the id.
func (r *repository) Update(_ context.Context, id string, apply func(b *model.Book)) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return model.Book{}, errs.ErrNotFound
	}
	book := r.books[idx]
	apply(&book)
	book.ID = id
	r.books[idx] = book
	return book, nil
}

func (r *repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return errs.ErrNotFound
	}
	r.books = append(r.books[:idx], r.books[idx+1:]...)
	r.log.Debug("Delete", zap.String("id", id), zap.Int("size", len(r.books)))
	return nil
}

func (r *repository) indexOf(id string) int {
	for i := range r.books {
		if r.books[i].ID == id {
			return i
		}
	}
	return -1
}
