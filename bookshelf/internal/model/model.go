package model

import (
	"encoding/json"
	"time"
)

type Book struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Year       json.RawMessage `json:"year,omitempty" swaggertype:"integer"`
	Author     string          `json:"author"`
	Summary    string          `json:"summary"`
	Publisher  string          `json:"publisher"`
	PageCount  int             `json:"pageCount"`
	ReadPage   int             `json:"readPage"`
	Finished   bool            `json:"finished"`
	Reading    bool            `json:"reading"`
	InsertedAt time.Time       `json:"insertedAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Preview is the projection returned by list.
func (b Book) Preview() BookPreview {
	return BookPreview{
		ID:        b.ID,
		Name:      b.Name,
		Publisher: b.Publisher,
	}
}

type BookPreview struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// BookRequest is the create and edit payload. Year is stored as sent and may be any JSON scalar.
type BookRequest struct {
	Name      string          `json:"name" validate:"required"`
	Year      json.RawMessage `json:"year,omitempty" swaggertype:"integer"`
	Author    string          `json:"author"`
	Summary   string          `json:"summary"`
	Publisher string          `json:"publisher"`
	PageCount int             `json:"pageCount" validate:"min=0"`
	ReadPage  int             `json:"readPage" validate:"min=0,ltefield=PageCount"`
	Reading   bool            `json:"reading"`
}

// ListFilter holds the optional list query params. An empty field is treated as absent.
type ListFilter struct {
	Name     string
	Reading  string
	Finished string
}

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type BookIDData struct {
	BookID string `json:"bookId"`
}

type BooksData struct {
	Books []BookPreview `json:"books"`
}

type BookData struct {
	Book Book `json:"book"`
}

type EventType string

const (
	EventBookCreated EventType = "book.created"
	EventBookUpdated EventType = "book.updated"
	EventBookDeleted EventType = "book.deleted"
)

// BookEvent is published on every successful mutation.
type BookEvent struct {
	Type      EventType `json:"type"`
	BookID    string    `json:"bookId"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
