package cli

import (
	"fmt"

	"github.com/homemenu/backend/internal/client"
	"github.com/spf13/cobra"
)

func (s *session) storeLogin(result client.AuthResult) error {
	s.settings.Token = result.Token
	s.settings.Username = result.User.Username
	if err := SaveSettings(s.settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func newRegisterCommand(s *session) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp client.Response[client.AuthResult]
			body := map[string]string{"username": username, "email": email, "password": password}
			if err := s.api.Post("/auth/register", body, &resp); err != nil {
				return fmt.Errorf("registering: %w", err)
			}
			if err := s.storeLogin(resp.Data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s (%s)\n", resp.Data.User.Username, resp.Data.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name shown as the menu owner")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCommand(s *session) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your Home Menu server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp client.Response[client.AuthResult]
			body := map[string]string{"email": email, "password": password}
			if err := s.api.Post("/auth/login", body, &resp); err != nil {
				return fmt.Errorf("logging in: %w", err)
			}
			if err := s.storeLogin(resp.Data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", resp.Data.User.Username, resp.Data.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ClearSettings(); err != nil {
				return fmt.Errorf("clearing settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			var resp client.Response[client.User]
			if err := s.api.Get("/auth/me", &resp); err != nil {
				return describe("fetching user", err)
			}

			if s.jsonOutput {
				printJSON(cmd.OutOrStdout(), resp.Data)
				return nil
			}
			printUser(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}
}
