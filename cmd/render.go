package cmd

import (
	"fmt"
	"slices"

	"github.com/kozaktomas/face-kiosk/internal/backend"
	"github.com/kozaktomas/face-kiosk/internal/cart"
	"github.com/kozaktomas/face-kiosk/internal/config"
)

func renderProfile(user backend.UserProfile) {
	fmt.Printf("  name:  %s\n", user.Name)
	fmt.Printf("  phone: %s\n", user.Phone)
	fmt.Printf("  email: %s\n", user.Email)
}

func renderDraft(draft backend.DraftProfile) {
	fmt.Printf("  name:  %s\n", draft.Name)
	fmt.Printf("  phone: %s\n", draft.Phone)
	fmt.Printf("  email: %s\n", draft.Email)
}

func renderHistory(history []backend.OrderRecord) {
	if len(history) == 0 {
		return
	}
	fmt.Println("History:")
	for _, record := range history {
		fmt.Printf("  Date: %s | Id: %s\n", record.Date, record.ID)
		for _, item := range record.Orders {
			fmt.Printf("    %-12s %g $\n", item.Name, cart.HistoryLineTotal(item))
		}
	}
}

func renderCatalog(items []config.CatalogItem) {
	fmt.Println("\nNew Order:")
	for i, item := range items {
		fmt.Printf("  %d) %-12s %g $\n", i+1, item.Name, item.Price)
	}
}

func renderCart(c cart.Cart) {
	if len(c) == 0 {
		return
	}

	// Map order is random; sort names for stable output.
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Println("Cart:")
	for _, name := range names {
		entry := c[name]
		fmt.Printf("  %dx %-12s %g $\n", entry.Count, entry.Name, cart.LineTotal(entry))
	}
	fmt.Printf("  Total: %g $\n", c.Total())
}
