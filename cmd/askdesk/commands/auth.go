package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/askdesk/askdesk-go/access"

	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the admin area",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if username == "" {
				fmt.Print("Username: ")
				reader := bufio.NewReader(os.Stdin)
				line, _ := reader.ReadString('\n')
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, _ := reader.ReadString('\n')
				password = strings.TrimSpace(line)
			}

			result := app.manager.Login(cmd.Context(), username, password)
			if !result.Success {
				return fmt.Errorf("login failed: %s", result.Error)
			}

			fmt.Printf("Logged in as %s (%s)\n", result.User.Username, result.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			app.manager.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session and its permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			user, ok := app.manager.Current()
			if !ok {
				fmt.Println("Not logged in")
				return nil
			}

			fmt.Printf("Username: %s\nRole: %s\n", user.Username, user.Role)
			if user.Email != "" {
				fmt.Printf("Email: %s\n", user.Email)
			}
			fmt.Printf("Admin area: %v\n", app.manager.IsAdminEligible())

			perms := make([]string, 0)
			for _, p := range access.Permissions(user.Role) {
				perms = append(perms, string(p))
			}
			fmt.Printf("Permissions: %s\n", strings.Join(perms, ", "))
			return nil
		},
	}
}

// NewRefreshCommand creates the refresh command
func NewRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the current credential for a fresh one",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.manager.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}
			fmt.Println("Session refreshed")
			return nil
		},
	}
}
