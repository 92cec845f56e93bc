package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

// notificationsCmd refreshes and prints the notification list. Unread rows
// are marked with an asterisk.
func (a *App) notificationsCmd(ctx context.Context) {
	a.session.RefreshNotifications(ctx)

	list := a.session.State().Notifications
	if len(list) == 0 {
		fmt.Println("No notifications.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tFROM\tWHEN\tMESSAGE")
	for _, n := range list {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			mark, n.ID, n.FromUserID, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
	}
	w.Flush()
}

func (a *App) setReadCmd(ctx context.Context, args []string, isRead bool) {
	usage := "Usage: read <id>"
	if !isRead {
		usage = "Usage: unread <id>"
	}
	if len(args) == 0 {
		fmt.Println(usage)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println(usage)
		return
	}

	if isRead {
		err = a.session.MarkRead(ctx, id)
	} else {
		err = a.session.MarkUnread(ctx, id)
	}
	if err != nil {
		fmt.Println("error:", err)
	}
}

// notifyCmd sends a notification to another user.
func (a *App) notifyCmd(ctx context.Context) {
	s := a.session.State()
	if s.User == nil {
		return
	}

	toText, err := getSimpleText(a.reader, "Recipient user id", os.Stdout)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	to, err := strconv.ParseInt(toText, 10, 64)
	if err != nil {
		fmt.Println("error: not a user id:", toText)
		return
	}
	message, err := getSimpleText(a.reader, "Message", os.Stdout)
	if err != nil || message == "" {
		fmt.Println("A message is required.")
		return
	}

	n := models.NotificationCreate{FromUserID: s.User.ID, UserID: to, Message: message}
	if err := a.client.CreateNotification(ctx, n); err != nil {
		fmt.Println("Send failed:", err)
		return
	}
	fmt.Println("Sent.")
}
