package model

import "time"

// Note mirrors a row of the `notes` table. The Content field holds
// whatever the repository persisted: ciphertext when encryption is
// enabled, plaintext otherwise. Decryption happens in the service
// layer; nothing below it ever sees plaintext content.
//
// Fields:
//
//	ID        – primary key identifier of the note.
//	OwnerID   – foreign key into the users table. Every note has exactly one owner.
//	Title     – short display title, stored in the clear.
//	Content   – note body as stored (ciphertext or plaintext).
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
type Note struct {
	ID        uint64    // notes.id
	OwnerID   uint64    // notes.user_id
	Title     string    // notes.title
	Content   string    // notes.content
	CreatedAt time.Time // notes.created_at
	UpdatedAt time.Time // notes.updated_at
}
