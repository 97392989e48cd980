package cli

import (
	"fmt"
	"strings"

	"github.com/homemenu/backend/internal/client"
	"github.com/spf13/cobra"
)

func newMenuCommand(s *session) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show your menu, or rename it with --title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			var resp client.Response[client.Menu]
			var err error
			if cmd.Flags().Changed("title") {
				err = s.api.Put("/menu", map[string]string{"title": title}, &resp)
			} else {
				err = s.api.Get("/menu", &resp)
			}
			if err != nil {
				return describe("loading menu", err)
			}

			if s.jsonOutput {
				printJSON(cmd.OutOrStdout(), resp.Data)
				return nil
			}
			printMenu(cmd.OutOrStdout(), resp.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New menu title")
	return cmd
}

func newItemCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add or remove menu items",
	}
	cmd.AddCommand(newItemAddCommand(s), newItemRemoveCommand(s))
	return cmd
}

func newItemAddCommand(s *session) *cobra.Command {
	var (
		category    string
		description string
		unavailable bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an item to your menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			req := client.ItemRequest{
				Name:        args[0],
				Description: description,
				Category:    category,
			}
			if unavailable {
				available := false
				req.IsAvailable = &available
			}

			var resp client.Response[client.MenuItem]
			if err := s.api.Post("/menu/items", req, &resp); err != nil {
				return describe("adding item", err)
			}

			if s.jsonOutput {
				printJSON(cmd.OutOrStdout(), resp.Data)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", resp.Data.Name, resp.Data.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "Mixed", "One of Vegetable, Meat, Soup, Mixed")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Item description")
	cmd.Flags().BoolVar(&unavailable, "unavailable", false, "Mark the item as unavailable")
	return cmd
}

func newItemRemoveCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"remove"},
		Short:   "Remove an item from your menu",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.requireAuth(); err != nil {
				return err
			}

			id := strings.TrimSpace(args[0])
			if err := s.api.Delete("/menu/items/"+id, nil); err != nil {
				return describe("removing item", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", id)
			return nil
		},
	}
}
