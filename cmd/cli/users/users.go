package users

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/crucial707/notes-api/cmd/cli/auth"
	"github.com/crucial707/notes-api/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is swapped out in tests so nothing touches the terminal.
var readPassword = term.ReadPassword

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
}

type credentials struct {
	username string
	password string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.username, "username", "", "account username")
	cmd.Flags().StringVar(&c.password, "password", "", "account password (prompted when omitted)")
}

func (c *credentials) resolve(w io.Writer) error {
	if c.username == "" {
		return fmt.Errorf("--username is required")
	}
	if c.password != "" {
		return nil
	}
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	c.password = string(pw)
	if c.password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.resolve(cmd.OutOrStdout()); err != nil {
				return err
			}

			var account struct {
				ID       int    `json:"id"`
				Username string `json:"username"`
			}
			payload := map[string]string{"username": creds.username, "password": creds.password}
			if err := auth.Call(http.DefaultClient, http.MethodPost, "/api/user/register/", "", payload, &account); err != nil {
				return fmt.Errorf("register: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %q (id %d). You can now log in.\n", account.Username, account.ID)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store tokens locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.resolve(cmd.OutOrStdout()); err != nil {
				return err
			}

			var tokens config.Tokens
			payload := map[string]string{"username": creds.username, "password": creds.password}
			if err := auth.Call(http.DefaultClient, http.MethodPost, "/api/token/", "", payload, &tokens); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if tokens.Access == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveTokens(tokens); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Login successful.")
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.ClearTokens()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
