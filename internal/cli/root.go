package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/homemenu/backend/internal/client"
	"github.com/spf13/cobra"
)

var errNotAuthenticated = errors.New(`not authenticated, run "homemenu login" first`)

// session holds the per-invocation state shared by every command.
type session struct {
	jsonOutput bool
	serverURL  string

	settings *Settings
	api      *client.Client
}

// NewRootCommand builds the homemenu command tree.
func NewRootCommand() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "homemenu",
		Short: "Home Menu CLI: edit and share your menu from the terminal",
		Long: `Home Menu CLI lets you edit your menu, share it through a 6-digit
room code, and join menus other people shared with you.

Get started:
  homemenu register --username alice --email a@example.com --password ...
  homemenu item add Dumplings --category Meat
  homemenu share --days 3
  homemenu join 123456`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			if s.serverURL != "" {
				settings.ServerURL = s.serverURL
			}
			s.settings = settings
			s.api = client.NewClient(settings.ServerURL, settings.Token)
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&s.jsonOutput, "json", false, "Output as JSON")
	root.PersistentFlags().StringVar(&s.serverURL, "server", "", "Override server URL (default: from settings or "+DefaultURL+")")

	root.AddCommand(
		newRegisterCommand(s),
		newLoginCommand(s),
		newLogoutCommand(),
		newWhoamiCommand(s),
		newMenuCommand(s),
		newItemCommand(s),
		newShareCommand(s),
		newJoinCommand(s),
		newSharedCommand(s),
	)
	return root
}

// Execute runs the CLI against os.Args.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (s *session) requireAuth() error {
	if s.settings == nil || !s.settings.HasToken() {
		return errNotAuthenticated
	}
	return nil
}

// describe turns an expired-session 401 into a hint to log in again.
func describe(action string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return fmt.Errorf("%s: session expired, run \"homemenu login\" again", action)
	}
	return fmt.Errorf("%s: %w", action, err)
}
