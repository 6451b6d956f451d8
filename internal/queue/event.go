// Package queue defines message payloads exchanged over the message broker.
package queue

// Event names published for note mutations.
const (
	EventNoteCreated = "note.created"
	EventNoteUpdated = "note.updated"
	EventNoteDeleted = "note.deleted"
)

// NoteEvent is published whenever a note is created, updated or
// deleted. It carries enough for downstream consumers to build an
// activity trail without querying the primary database, and nothing
// more: note content never rides the broker, encrypted or not.
type NoteEvent struct {
	Event      string `json:"event"`
	NoteID     uint64 `json:"note_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
