package handler

import (
	"fmt"
	"net/http"

	"github.com/Astemirdum/bookshelf-service/bookshelf/config"
	_ "github.com/Astemirdum/bookshelf-service/bookshelf/docs" // swagger spec
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/errs"
	"github.com/Astemirdum/bookshelf-service/bookshelf/internal/model"
	md "github.com/Astemirdum/bookshelf-service/pkg/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	msgAdded   = "Buku berhasil ditambahkan"
	msgUpdated = "Buku berhasil diperbarui"
	msgDeleted = "Buku berhasil dihapus"

	msgAddFailed       = "Gagal menambahkan buku"
	msgUpdateFailed    = "Gagal memperbarui buku"
	msgDeleteFailed    = "Buku gagal dihapus"
	msgInsertFailed    = "Buku gagal ditambahkan"
	msgNotUpdated      = "Buku gagal diperbarui"
	msgBookNotFound    = "Buku tidak ditemukan"
	msgIDNotFound      = "Id tidak ditemukan"
	msgMissingName     = "Mohon isi nama buku"
	msgReadPageTooHigh = "readPage tidak boleh lebih besar dari pageCount"
	msgInvalidPayload  = "Mohon periksa kembali data buku"
)

type Handler struct {
	bookSvc BookService
	log     *zap.Logger
}

func New(bookSvc BookService, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc: bookSvc,
		log:     log.Named("handler"),
	}
}

func (h *Handler) NewRouter(limits config.RateLimit) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = h.errorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	base := e.Group("", md.NewRateLimiter(rate.Limit(limits.BaseRPS)))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		md.NewRateLimiter(rate.Limit(limits.APIRPS)),
	)
	api.POST("/books", h.AddBook)
	api.GET("/books", h.GetBooks)
	api.GET("/books/:bookId", h.GetBook)
	api.PUT("/books/:bookId", h.EditBook)
	api.DELETE("/books/:bookId", h.DeleteBook)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// AddBook godoc
// @Summary  Add a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    book body     model.BookRequest true "book"
// @Success  201  {object} model.Response{data=model.BookIDData}
// @Failure  400  {object} model.Response
// @Failure  500  {object} model.Response
// @Router   /books [post]
func (h *Handler) AddBook(c echo.Context) error {
	var req model.BookRequest
	if err := bindBook(c, &req); err != nil {
		return failf(http.StatusBadRequest, msgAddFailed, msgInvalidPayload)
	}
	id, err := h.bookSvc.Add(c.Request().Context(), req)
	if err != nil {
		if code, msg, ok := validationFail(err); ok {
			return failf(code, msgAddFailed, msg)
		}
		h.log.Error("AddBook", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, msgInsertFailed)
	}
	return c.JSON(http.StatusCreated, model.Response{
		Status:  model.StatusSuccess,
		Message: msgAdded,
		Data:    model.BookIDData{BookID: id},
	})
}

// GetBooks godoc
// @Summary  List books
// @Description Only one filter applies: name, then reading, then finished.
// @Tags     books
// @Produce  json
// @Param    name     query    string false "case-insensitive name substring"
// @Param    reading  query    string false "0 for not reading, anything else for reading"
// @Param    finished query    string false "1 for finished, anything else for unfinished"
// @Success  200      {object} model.Response{data=model.BooksData}
// @Router   /books [get]
func (h *Handler) GetBooks(c echo.Context) error {
	filter := model.ListFilter{
		Name:     c.QueryParam("name"),
		Reading:  c.QueryParam("reading"),
		Finished: c.QueryParam("finished"),
	}
	books, err := h.bookSvc.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.Response{
		Status: model.StatusSuccess,
		Data:   model.BooksData{Books: books},
	})
}

// GetBook godoc
// @Summary  Get a book
// @Tags     books
// @Produce  json
// @Param    bookId path     string true "book id"
// @Success  200    {object} model.Response{data=model.BookData}
// @Failure  404    {object} model.Response
// @Router   /books/{bookId} [get]
func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.bookSvc.GetByID(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, msgBookNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.Response{
		Status: model.StatusSuccess,
		Data:   model.BookData{Book: book},
	})
}

// EditBook godoc
// @Summary  Update a book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    bookId path     string            true "book id"
// @Param    book   body     model.BookRequest true "book"
// @Success  200    {object} model.Response
// @Failure  400    {object} model.Response
// @Failure  404    {object} model.Response
// @Router   /books/{bookId} [put]
func (h *Handler) EditBook(c echo.Context) error {
	var req model.BookRequest
	if err := bindBook(c, &req); err != nil {
		return failf(http.StatusBadRequest, msgUpdateFailed, msgInvalidPayload)
	}
	if err := h.bookSvc.Edit(c.Request().Context(), c.Param("bookId"), req); err != nil {
		if code, msg, ok := validationFail(err); ok {
			return failf(code, msgUpdateFailed, msg)
		}
		if errors.Is(err, errs.ErrNotFound) {
			return failf(http.StatusNotFound, msgUpdateFailed, msgIDNotFound)
		}
		h.log.Error("EditBook", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, msgNotUpdated)
	}
	return c.JSON(http.StatusOK, model.Response{
		Status:  model.StatusSuccess,
		Message: msgUpdated,
	})
}

// DeleteBook godoc
// @Summary  Delete a book
// @Tags     books
// @Produce  json
// @Param    bookId path     string true "book id"
// @Success  200    {object} model.Response
// @Failure  404    {object} model.Response
// @Router   /books/{bookId} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.bookSvc.Delete(c.Request().Context(), c.Param("bookId")); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return failf(http.StatusNotFound, msgDeleteFailed, msgIDNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, model.Response{
		Status:  model.StatusSuccess,
		Message: msgDeleted,
	})
}

// bindBook decodes the request body, reading it as json when no content type is sent.
func bindBook(c echo.Context, req *model.BookRequest) error {
	if c.Request().Header.Get(echo.HeaderContentType) == "" {
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return c.Bind(req)
}

func validationFail(err error) (int, string, bool) {
	switch {
	case errors.Is(err, errs.ErrMissingName):
		return http.StatusBadRequest, msgMissingName, true
	case errors.Is(err, errs.ErrReadPageExceedsPageCount):
		return http.StatusBadRequest, msgReadPageTooHigh, true
	case errors.Is(err, errs.ErrInvalidPayload):
		return http.StatusBadRequest, msgInvalidPayload, true
	default:
		return 0, "", false
	}
}

func failf(code int, prefix, reason string) *echo.HTTPError {
	return echo.NewHTTPError(code, fmt.Sprintf("%s. %s", prefix, reason))
}

// errorHandler renders every error as a fail response.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Int("status", code), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, model.Response{Status: model.StatusFail, Message: msg})
	}
	if err != nil {
		h.log.Error("errorHandler", zap.Error(err))
	}
}
