// Package service holds the note vault: the layer that applies
// at-rest encryption on the way into storage and decryption on the
// way out, scopes every operation to the authenticated owner, and
// keeps the listing cache and activity queue in sync with mutations.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iliyamo/secure-notes/internal/crypto"
	"github.com/iliyamo/secure-notes/internal/model"
	"github.com/iliyamo/secure-notes/internal/queue"
)

// ContentErrorInvalid marks a listed note whose stored content could
// not be authenticated and decrypted. The note still appears in the
// listing so one corrupted row cannot hide the rest.
const ContentErrorInvalid = "invalid_ciphertext"

// NoteStore is the persistence surface the vault depends on.
// Implemented by *repository.NoteRepo; tests substitute an in-memory
// fake. Update and Delete report an ownership miss and a missing id
// the same way (repository.ErrNoteNotFound).
type NoteStore interface {
	Insert(ctx context.Context, ownerID uint64, title, content string) (model.Note, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Note, error)
	UpdateContent(ctx context.Context, id, ownerID uint64, content string) (model.Note, error)
	Delete(ctx context.Context, id, ownerID uint64) error
}

// ListingCache holds marshaled per-owner listings. Implemented by
// *NotesCache; tests substitute an in-memory fake. Implementations
// absorb their own failures, a broken cache only costs the read-through.
type ListingCache interface {
	Get(ctx context.Context, ownerID uint64) ([]byte, bool)
	Set(ctx context.Context, ownerID uint64, payload []byte)
	Invalidate(ctx context.Context, ownerID uint64)
}

// EventPublisher pushes a note activity event to the broker.
// Fire-and-forget: the vault logs nothing itself and ignores the
// returned error, the publisher already logs its own failures.
type EventPublisher func(ctx context.Context, event queue.NoteEvent) error

// Note is the plaintext view of a note handed to callers. Content is
// empty and ContentError set when the stored blob failed decryption.
type Note struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ContentError string    `json:"content_error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NoteVault owns the plaintext/ciphertext boundary for notes. Every
// operation takes the already-authenticated owner resolved by the
// auth middleware; the vault itself never parses credentials. With a
// nil KeyBox the vault stores plaintext (encryption disabled by
// configuration); everything else behaves identically.
type NoteVault struct {
	store  NoteStore
	box    *crypto.KeyBox
	cache  ListingCache
	events EventPublisher
}

// NewNoteVault builds a vault. box, cache and events may each be nil:
// plaintext storage, no caching, no events.
func NewNoteVault(store NoteStore, box *crypto.KeyBox, cache ListingCache, events EventPublisher) *NoteVault {
	return &NoteVault{store: store, box: box, cache: cache, events: events}
}

// Create encrypts the content, persists the note and returns the
// plaintext view. The response echoes the caller's own content rather
// than decrypting what was stored; the plaintext is right here.
func (v *NoteVault) Create(ctx context.Context, owner model.User, title, content string) (Note, error) {
	stored := content
	if v.box != nil {
		enc, err := v.box.Encrypt(content)
		if err != nil {
			return Note{}, err
		}
		stored = enc
	}
	n, err := v.store.Insert(ctx, owner.ID, title, stored)
	if err != nil {
		return Note{}, err
	}
	v.invalidate(ctx, owner.ID)
	v.publish(ctx, queue.EventNoteCreated, n.ID, owner.ID, n.Title)

	// Echo the caller's plaintext; no decrypt round trip.
	n.Content = content
	return plainView(n), nil
}

// List returns all of the owner's notes with decrypted content,
// serving from the cache when possible. A note whose content cannot
// be decrypted is reported in place with ContentError set; the rest
// of the listing is unaffected.
func (v *NoteVault) List(ctx context.Context, owner model.User) ([]Note, error) {
	if v.cache != nil {
		if payload, ok := v.cache.Get(ctx, owner.ID); ok {
			var cached []Note
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
			// Undecodable cache entry: drop it and fall through to the database.
			v.cache.Invalidate(ctx, owner.ID)
		}
	}

	rows, err := v.store.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(rows))
	for _, n := range rows {
		notes = append(notes, v.view(n))
	}

	if v.cache != nil {
		if payload, err := json.Marshal(notes); err == nil {
			v.cache.Set(ctx, owner.ID, payload)
		}
	}
	return notes, nil
}

// Update replaces a note's content. The repository locates the row by
// (id, owner) in one atomic unit, so a note that does not exist and a
// note owned by someone else both come back as ErrNoteNotFound.
func (v *NoteVault) Update(ctx context.Context, owner model.User, noteID uint64, content string) (Note, error) {
	stored := content
	if v.box != nil {
		enc, err := v.box.Encrypt(content)
		if err != nil {
			return Note{}, err
		}
		stored = enc
	}
	n, err := v.store.UpdateContent(ctx, noteID, owner.ID, stored)
	if err != nil {
		return Note{}, err
	}
	v.invalidate(ctx, owner.ID)
	v.publish(ctx, queue.EventNoteUpdated, n.ID, owner.ID, n.Title)

	n.Content = content
	return plainView(n), nil
}

// Delete removes a note with the same ownership-blind not-found
// behavior as Update.
func (v *NoteVault) Delete(ctx context.Context, owner model.User, noteID uint64) error {
	if err := v.store.Delete(ctx, noteID, owner.ID); err != nil {
		return err
	}
	v.invalidate(ctx, owner.ID)
	v.publish(ctx, queue.EventNoteDeleted, noteID, owner.ID, "")
	return nil
}

// plainView builds the caller-facing representation of a row whose
// Content field already holds plaintext.
func plainView(n model.Note) Note {
	return Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// view converts a stored row to the plaintext representation,
// decrypting the content when encryption is enabled.
func (v *NoteVault) view(n model.Note) Note {
	out := plainView(n)
	if v.box == nil {
		return out
	}
	plain, err := v.box.Decrypt(n.Content)
	if err != nil {
		log.Printf("vault: note %d content failed authentication", n.ID)
		out.Content = ""
		out.ContentError = ContentErrorInvalid
		return out
	}
	out.Content = plain
	return out
}

func (v *NoteVault) invalidate(ctx context.Context, ownerID uint64) {
	if v.cache != nil {
		v.cache.Invalidate(ctx, ownerID)
	}
}

func (v *NoteVault) publish(ctx context.Context, event string, noteID, userID uint64, title string) {
	if v.events == nil {
		return
	}
	_ = v.events(ctx, queue.NoteEvent{
		Event:      event,
		NoteID:     noteID,
		UserID:     userID,
		Title:      title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
