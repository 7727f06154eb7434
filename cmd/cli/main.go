package main

import (
	"fmt"
	"os"

	"github.com/crucial707/notes-api/cmd/cli/notes"
	"github.com/crucial707/notes-api/cmd/cli/root"
	"github.com/crucial707/notes-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	notes.InitNotes(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
