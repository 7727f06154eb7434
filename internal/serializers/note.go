package serializers

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/crucial707/notes-api/internal/models"
)

const maxTitleLen = 100

// NoteInput is the write side of a note. id, created_at and author are
// read-only and are dropped during decoding.
type NoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type NoteOutput struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    int       `json:"author"`
}

func NewNoteOutput(n models.Note) NoteOutput {
	return NoteOutput{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		Author:    n.AuthorID,
	}
}

// NewNoteList never returns nil so an empty result encodes as [].
func NewNoteList(notes []models.Note) []NoteOutput {
	out := make([]NoteOutput, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteOutput(n))
	}
	return out
}

func DecodeNoteInput(r io.Reader) (NoteInput, error) {
	var in NoteInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return NoteInput{}, invalidJSON()
	}
	in.Title = trimmed(in.Title)
	in.Content = trimmed(in.Content)
	return in, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (in NoteInput) Validate() error {
	errs := fieldErrors{}

	switch {
	case in.Title == nil:
		errs.add("title", msgRequired)
	case *in.Title == "":
		errs.add("title", msgBlank)
	case utf8.RuneCountInString(*in.Title) > maxTitleLen:
		errs.add("title", tooLong(maxTitleLen))
	case hasNullChar(*in.Title):
		errs.add("title", msgNullChar)
	}

	switch {
	case in.Content == nil:
		errs.add("content", msgRequired)
	case *in.Content == "":
		errs.add("content", msgBlank)
	case hasNullChar(*in.Content):
		errs.add("content", msgNullChar)
	}

	return errs.err()
}

type NoteStore interface {
	Create(ctx context.Context, authorID int, title, content string) (models.Note, error)
}

type NoteSerializer struct {
	Notes NoteStore
}

// Create validates in and stores it with authorID as the owner.
func (s *NoteSerializer) Create(ctx context.Context, in NoteInput, authorID int) (NoteOutput, error) {
	if err := in.Validate(); err != nil {
		return NoteOutput{}, err
	}

	note, err := s.Notes.Create(ctx, authorID, *in.Title, *in.Content)
	if err != nil {
		return NoteOutput{}, err
	}
	return NewNoteOutput(note), nil
}
