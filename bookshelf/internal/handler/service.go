package handler

import (
	"context"

	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/model"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	Add(ctx context.Context, req model.BookRequest) (string, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.BookPreview, error)
	GetByID(ctx context.Context, id string) (model.Book, error)
	Edit(ctx context.Context, id string, req model.BookRequest) error
	Delete(ctx context.Context, id string) error
}

var _ BookService = (*service.Service)(nil)
