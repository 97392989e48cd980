package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/homemenu/backend/internal/client"
)

func printJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func printMenu(out io.Writer, m client.Menu) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Title:\t%s\n", m.Title)
	fmt.Fprintf(w, "Owner:\t%s\n", m.OwnerName)
	fmt.Fprintf(w, "ID:\t%s\n", m.ID)
	if m.RoomNumber != nil {
		fmt.Fprintf(w, "Room:\t%s\n", *m.RoomNumber)
	}
	if !m.LastUpdated.IsZero() {
		fmt.Fprintf(w, "Updated:\t%s\n", m.LastUpdated.Format(time.RFC3339))
	}
	w.Flush()

	fmt.Fprintln(out)
	printItems(out, m.Items)
}

func printItems(out io.Writer, items []client.MenuItem) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No items.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tAVAILABLE\tDESCRIPTION\tID")
	for _, item := range items {
		available := "yes"
		if !item.IsAvailable {
			available = "no"
		}
		description := item.Description
		if description == "" {
			description = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.Name, item.Category, available, description, item.ID)
	}
	w.Flush()
}

func printSharedMenus(out io.Writer, menus []client.Menu) {
	if len(menus) == 0 {
		fmt.Fprintln(out, "No shared menus.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tOWNER\tITEMS\tID")
	for _, m := range menus {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", m.Title, m.OwnerName, len(m.Items), m.ID)
	}
	w.Flush()
}

func printRoom(out io.Writer, r client.Room) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Room:\t%s\n", r.RoomNumber)
	fmt.Fprintf(w, "Expires:\t%s\n", r.ExpirationDate.Format(time.RFC3339))
	w.Flush()
}

func printUser(out io.Writer, u client.User) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	w.Flush()
}
