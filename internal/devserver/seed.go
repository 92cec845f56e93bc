package devserver

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

// Seed fills the store with a small dataset so a fresh dev server is usable
// immediately: an admin, a demo user with one tracked product, a short price
// series, and a welcome notification.
//
// Credentials: admin@pricewatch.local / admin123, demo@pricewatch.local /
// demo1234.
func Seed(store *Store) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demoHash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := store.CreateUser("admin@pricewatch.local", adminHash)
	if err != nil {
		return err
	}
	admin.Admin = true

	demo, err := store.CreateUser("demo@pricewatch.local", demoHash)
	if err != nil {
		return err
	}

	p := store.CreateProduct("https://shop.example.com/gadgets/solar-charger", "example")
	store.Track(&trackRecord{
		UserID:    demo.ID,
		ProductID: p.ID,
		Notes:     "wait for a sale",
		Notify:    true,
	})

	// A week of daily prices drifting around the base.
	base := p.CurrentPrice
	for i := 6; i >= 1; i-- {
		at := time.Now().UTC().AddDate(0, 0, -i)
		store.AddPrice(p.ID, base+float64(i%3)*2.5-2.5, at)
	}

	store.CreateNotification(models.NotificationCreate{
		FromUserID: admin.ID,
		UserID:     demo.ID,
		Message:    "Welcome to pricewatch!",
	})
	return nil
}
