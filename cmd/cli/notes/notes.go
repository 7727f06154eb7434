package notes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/crucial707/notes-api/cmd/cli/auth"
	"github.com/crucial707/notes-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

type note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    int       `json:"author"`
}

// ==========================
// Init Notes
// ==========================
func InitNotes(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		listNotesCmd(),
		createNoteCmd(),
		deleteNoteCmd(),
	)
}

// ==========================
// LIST
// ==========================
func listNotesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var notes []note
			if err := auth.CallAuthed(http.DefaultClient, http.MethodGet, "/api/notes/", nil, &notes); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(notes, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes yet.")
				return nil
			}

			rows := make([][]interface{}, 0, len(notes))
			for _, n := range notes {
				rows = append(rows, []interface{}{n.ID, n.Title, truncate(n.Content, 40), n.CreatedAt.Local().Format("2006-01-02 15:04")})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "CONTENT", "CREATED"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// ==========================
// CREATE
// ==========================
func createNoteCmd() *cobra.Command {
	var title string
	var content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			var created note
			payload := map[string]string{"title": title, "content": content}
			if err := auth.CallAuthed(http.DefaultClient, http.MethodPost, "/api/notes/", payload, &created); err != nil {
				return fmt.Errorf("create note: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note created (id %d).\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one of your notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid note id %q", args[0])
			}

			path := fmt.Sprintf("/api/notes/delete/%d/", id)
			if err := auth.CallAuthed(http.DefaultClient, http.MethodDelete, path, nil, nil); err != nil {
				return fmt.Errorf("delete note %d: %w", id, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Note deleted.")
			return nil
		},
	}
}
