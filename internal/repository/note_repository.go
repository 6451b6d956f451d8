package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/secure-notes/internal/model"
)

// NoteRepo provides CRUD operations for notes. Every query is scoped
// by owner: there is no way to reach a row through this repository
// without supplying the user_id it belongs to. The content column is
// stored as received; encryption and decryption are the service
// layer's business.
type NoteRepo struct{ DB *sql.DB }

// NewNoteRepo returns a new NoteRepo bound to the given database.
func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

// Insert creates a note row and reads it back so that the generated
// id and timestamps are populated from the database rather than
// guessed at in Go.
func (r *NoteRepo) Insert(ctx context.Context, ownerID uint64, title, content string) (model.Note, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notes (user_id, title, content) VALUES (?,?,?)",
		ownerID, title, content)
	if err != nil {
		return model.Note{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Note{}, err
	}
	var n model.Note
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,title,content,created_at,updated_at FROM notes WHERE id=? LIMIT 1",
		uint64(id)).Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListByOwner returns all notes belonging to ownerID, newest first.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,title,content,created_at,updated_at FROM notes WHERE user_id=? ORDER BY id DESC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateContent replaces the content of a note owned by ownerID and
// returns the updated row. The row is located and locked inside a
// transaction so that a concurrent delete of the same note cannot
// slip between the ownership check and the write. A miss on the
// (id, owner) pair, whether the note never existed or belongs to
// someone else, is reported as ErrNoteNotFound.
func (r *NoteRepo) UpdateContent(ctx context.Context, id, ownerID uint64, content string) (model.Note, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Note{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var n model.Note
	err = tx.QueryRowContext(ctx,
		"SELECT id,user_id,title,content,created_at,updated_at FROM notes WHERE id=? AND user_id=? FOR UPDATE",
		id, ownerID).Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Note{}, ErrNoteNotFound
		}
		return model.Note{}, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE notes SET content=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		content, n.ID); err != nil {
		return model.Note{}, err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT id,user_id,title,content,created_at,updated_at FROM notes WHERE id=?",
		n.ID).Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return model.Note{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// Delete removes a note owned by ownerID. DELETE is atomic on its
// own, so a single owner-scoped statement suffices; zero affected
// rows means the (id, owner) pair matched nothing.
func (r *NoteRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM notes WHERE id=? AND user_id=?", id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
