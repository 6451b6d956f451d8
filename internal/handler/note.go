package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-notes/internal/middleware"
	"github.com/iliyamo/secure-notes/internal/repository"
	"github.com/iliyamo/secure-notes/internal/service"
)

// NoteHandler exposes the note CRUD endpoints. All routes are behind
// the JWT middleware, so a resolved user is always present in the
// context; its absence is a server bug and answered with 401 anyway.
type NoteHandler struct {
	Vault *service.NoteVault
}

func NewNoteHandler(v *service.NoteVault) *NoteHandler {
	return &NoteHandler{Vault: v}
}

type createNoteReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
type updateNoteReq struct {
	Content string `json:"content"`
}

// List returns the caller's notes with decrypted content.
func (h *NoteHandler) List(c echo.Context) error {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notes, err := h.Vault.List(ctx, owner)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notes failed"})
	}
	if notes == nil {
		notes = []service.Note{}
	}
	return c.JSON(http.StatusOK, echo.Map{"notes": notes})
}

// Create stores a new note for the caller.
func (h *NoteHandler) Create(c echo.Context) error {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	note, err := h.Vault.Create(ctx, owner, req.Title, req.Content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create note failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"note": note})
}

// Update replaces the content of one of the caller's notes. A note
// another user owns answers 404 exactly like a note that does not
// exist.
func (h *NoteHandler) Update(c echo.Context) error {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || noteID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note id"})
	}
	var req updateNoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	note, err := h.Vault.Update(ctx, owner, noteID, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update note failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"note": note})
}

// Delete removes one of the caller's notes, with the same
// ownership-blind 404 as Update.
func (h *NoteHandler) Delete(c echo.Context) error {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	noteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || noteID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Vault.Delete(ctx, owner, noteID); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete note failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
