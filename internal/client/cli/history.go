package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

// historyCmd collects price-history search parameters interactively and
// prints the matching rows, newest first (server order).
func (a *App) historyCmd(ctx context.Context) {
	q := models.PriceHistoryQuery{}

	idText, err := getSimpleText(a.reader, "Product id (blank for any)", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if idText != "" {
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			fmt.Println("error: not a product id:", idText)
			return
		}
		q.ProductID = id
	}

	q.Name, _ = getSimpleText(a.reader, "Product name contains (blank for any)", os.Stdout)

	notif, _ := getSimpleText(a.reader, "Notifications filter: all/enabled/disabled (blank for all)", os.Stdout)
	switch notif {
	case "", string(models.NotificationsAll):
	case string(models.NotificationsEnabled):
		q.Notifications = models.NotificationsEnabled
	case string(models.NotificationsDisabled):
		q.Notifications = models.NotificationsDisabled
	default:
		fmt.Println("error: unknown filter:", notif)
		return
	}

	if s := a.session.State(); s.User != nil && s.User.Admin {
		userText, _ := getSimpleText(a.reader, "Filter by user id (blank for all users)", os.Stdout)
		if userText != "" {
			id, err := strconv.ParseInt(userText, 10, 64)
			if err != nil {
				fmt.Println("error: not a user id:", userText)
				return
			}
			q.UserFilter = id
		}
	}

	entries, err := a.catalog.SearchHistory(ctx, q)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No matching price history.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPRODUCT\tPRICE\tSOURCE\tNOTIFY\tUSER")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s (%d)\t%.2f\t%s\t%t\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.ProductName, e.ProductID,
			e.Price, e.Source, e.Notifications, e.UserEmail)
	}
	w.Flush()
}
