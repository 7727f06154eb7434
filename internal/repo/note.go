package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/notes-api/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

// NoteRepo only exposes author-scoped reads and deletes, so callers cannot
// address a note outside the caller's own set.
type NoteRepo struct {
	DB *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{DB: db}
}

// ========================
// CREATE NOTE
// ========================

func (r *NoteRepo) Create(ctx context.Context, authorID int, title, content string) (models.Note, error) {
	var note models.Note
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO notes (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, content, created_at, author_id`,
		title, content, authorID,
	).Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.AuthorID,
	)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// ========================
// LIST NOTES BY AUTHOR
// ========================

func (r *NoteRepo) ListByAuthor(ctx context.Context, authorID int) ([]models.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, content, created_at, author_id
		 FROM notes
		 WHERE author_id = $1
		 ORDER BY id`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.AuthorID); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// ========================
// DELETE OWNED NOTE
// ========================

// DeleteOwned removes the note only when it belongs to authorID. A note owned
// by someone else is reported exactly like a missing one: ErrNotFound.
func (r *NoteRepo) DeleteOwned(ctx context.Context, id, authorID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM notes WHERE id = $1 AND author_id = $2`,
		id, authorID,
	)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
