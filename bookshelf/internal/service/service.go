package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/errs"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/events"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/model"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/repository"
	"github.com/Astemirdum/bookshelf-service/pkg/validate"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const idLength = 16

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	publisher events.Publisher
	validator *validate.CustomValidator

	now   func() time.Time
	newID func() string
}

func NewService(repo repository.Repository, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		publisher: publisher,
		validator: validate.NewCustomValidator(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     newBookID,
	}
}

// newBookID returns a 16 char opaque id cut from a random uuid.
func newBookID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}

func (s *Service) Add(ctx context.Context, req model.BookRequest) (string, error) {
	if err := s.validate(req); err != nil {
		return "", err
	}
	now := s.now()
	book := model.Book{
		ID:         s.newID(),
		InsertedAt: now,
	}
	applyRequest(&book, req, now)

	if err := s.repo.Create(ctx, book); err != nil {
		s.log.Error("repo.Create", zap.String("id", book.ID), zap.Error(err))
		return "", errors.Wrap(errs.ErrInsertFailed, err.Error())
	}
	if _, err := s.repo.Get(ctx, book.ID); err != nil {
		s.log.Error("inserted book is missing", zap.String("id", book.ID), zap.Error(err))
		return "", errs.ErrInsertFailed
	}

	s.publish(ctx, model.EventBookCreated, book)
	return book.ID, nil
}

// List applies at most one filter: name, then reading, then finished.
// Lower priority filters are ignored when a higher one is set.
func (s *Service) List(ctx context.Context, filter model.ListFilter) ([]model.BookPreview, error) {
	books, err := s.repo.List(ctx, matcher(filter))
	if err != nil {
		return nil, errors.Wrap(err, "repo.List")
	}
	previews := make([]model.BookPreview, 0, len(books))
	for _, b := range books {
		previews = append(previews, b.Preview())
	}
	return previews, nil
}

func matcher(f model.ListFilter) func(model.Book) bool {
	switch {
	case f.Name != "":
		name := strings.ToLower(f.Name)
		return func(b model.Book) bool {
			return strings.Contains(strings.ToLower(b.Name), name)
		}
	case f.Reading != "":
		reading := f.Reading != "0"
		return func(b model.Book) bool {
			return b.Reading == reading
		}
	case f.Finished != "":
		finished := f.Finished == "1"
		return func(b model.Book) bool {
			return b.Finished == finished
		}
	default:
		return nil
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (model.Book, error) {
	return s.repo.Get(ctx, id)
}

// Edit validates before looking the id up, so a bad payload never reveals whether the id exists.
func (s *Service) Edit(ctx context.Context, id string, req model.BookRequest) error {
	if err := s.validate(req); err != nil {
		return err
	}
	book, err := s.repo.Update(ctx, id, func(b *model.Book) {
		applyRequest(b, req, s.now())
	})
	if err != nil {
		return err
	}
	s.publish(ctx, model.EventBookUpdated, book)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, model.EventBookDeleted, model.Book{ID: id})
	return nil
}

func (s *Service) validate(req model.BookRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		if !isScalar(req.Year) {
			return errors.Wrap(errs.ErrInvalidPayload, "year must be a scalar")
		}
		return nil
	}
	fields := validate.FieldErrors(err)
	switch {
	case fields["Name"] != "":
		return errs.ErrMissingName
	case fields["ReadPage"] == "ltefield":
		return errs.ErrReadPageExceedsPageCount
	default:
		return errors.Wrap(errs.ErrInvalidPayload, err.Error())
	}
}

func isScalar(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || (raw[0] != '{' && raw[0] != '[')
}

func applyRequest(b *model.Book, req model.BookRequest, updatedAt time.Time) {
	b.Name = req.Name
	b.Year = req.Year
	b.Author = req.Author
	b.Summary = req.Summary
	b.Publisher = req.Publisher
	b.PageCount = req.PageCount
	b.ReadPage = req.ReadPage
	b.Reading = req.Reading
	b.Finished = req.ReadPage == req.PageCount
	b.UpdatedAt = updatedAt
}

// publish logs and drops event delivery errors.
func (s *Service) publish(ctx context.Context, typ model.EventType, book model.Book) {
	event := model.BookEvent{
		Type:      typ,
		BookID:    book.ID,
		Name:      book.Name,
		Timestamp: book.UpdatedAt,
	}
	if typ == model.EventBookDeleted {
		event.Timestamp = s.now()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish event", zap.String("type", string(typ)), zap.String("id", book.ID), zap.Error(err))
	}
}
