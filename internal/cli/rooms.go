package cli

import (
	"fmt"
	"strings"

	"github.com/homemenu/backend/internal/client"
	"github.com/homemenu/backend/internal/roomcode"
	"github.com/spf13/cobra"
)

func newShareCommand(s *session) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share your menu through a room code",
		Long: `Creates a room for your menu and prints its 6-digit code. Anyone with
the code can join until the room expires. Durations are clamped to 1..7 days.
Sharing again while the room is active prints the same code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			var resp client.Response[client.Room]
			if err := s.api.Post("/rooms", map[string]int{"durationInDays": days}, &resp); err != nil {
				return describe("sharing menu", err)
			}

			if s.jsonOutput {
				printJSON(cmd.OutOrStdout(), resp.Data)
				return nil
			}
			printRoom(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Days the room stays open (1-7)")
	return cmd
}

func newJoinCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "join <room-code>",
		Short: "Join a room and keep a copy of its menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			code := strings.TrimSpace(args[0])
			if !roomcode.Valid(code) {
				return fmt.Errorf("room code must be %d digits, got %q", roomcode.Length, code)
			}

			var resp client.Response[client.Menu]
			if err := s.api.Post("/rooms/"+code+"/join", nil, &resp); err != nil {
				return describe("joining room "+code, err)
			}

			if s.jsonOutput {
				printJSON(cmd.OutOrStdout(), resp.Data)
				return nil
			}
			printMenu(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}
}

func newSharedCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shared",
		Short: "List menus you joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			var resp client.Response[[]client.Menu]
			if err := s.api.Get("/shared", &resp); err != nil {
				return describe("listing shared menus", err)
			}

			if s.jsonOutput {
				printJSON(cmd.OutOrStdout(), resp.Data)
				return nil
			}
			printSharedMenus(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <menu-id>",
		Short: "Forget a joined menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			id := strings.TrimSpace(args[0])
			if err := s.api.Delete("/shared/"+id, nil); err != nil {
				return describe("removing shared menu", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed shared menu %s\n", id)
			return nil
		},
	})
	return cmd
}
