package devserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	s := NewStore()
	_, err := s.CreateUser("a@b.com", []byte("hash"))
	require.NoError(t, err)

	_, err = s.CreateUser("a@b.com", []byte("hash"))
	assert.ErrorIs(t, err, errEmailTaken)
}

func TestStore_DeleteNotification_ScopedToRecipient(t *testing.T) {
	s := NewStore()
	n := s.CreateNotification(models.NotificationCreate{FromUserID: 1, UserID: 2, Message: "hi"})

	_, err := s.DeleteNotification(n.ID, 1)
	assert.ErrorIs(t, err, errNoSuchEntry, "sender must not be able to delete the recipient's copy")

	deleted, err := s.DeleteNotification(n.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, n.ID, deleted.ID)
	assert.Empty(t, s.NotificationsFor(2))
}

func TestStore_NotificationsFor_NewestFirst(t *testing.T) {
	s := NewStore()
	first := s.CreateNotification(models.NotificationCreate{UserID: 1, Message: "first"})
	first.CreatedAt = time.Now().Add(-time.Hour)
	s.CreateNotification(models.NotificationCreate{UserID: 1, Message: "second"})

	list := s.NotificationsFor(1)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.Equal(t, "first", list[1].Message)
}

func TestStore_AddPrice_FoldsAggregates(t *testing.T) {
	s := NewStore()
	p := s.CreateProduct("https://shop.example/p/lamp", "")
	base := p.CurrentPrice

	s.AddPrice(p.ID, base-5, time.Now().UTC())
	s.AddPrice(p.ID, base+5, time.Now().UTC().Add(time.Second))

	got, ok := s.ProductByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, base+5, got.CurrentPrice)
	assert.Equal(t, base-5, got.LowestPrice)
	assert.Equal(t, base+5, got.HighestPrice)
}

func TestStore_Track_UpsertsPerUserSettings(t *testing.T) {
	s := NewStore()
	p := s.CreateProduct("https://shop.example/p/lamp", "")

	s.Track(&trackRecord{UserID: 1, ProductID: p.ID, Notes: "old"})
	s.Track(&trackRecord{UserID: 1, ProductID: p.ID, Notes: "new", Notify: true})

	tracks := s.TracksByUser(1)
	require.Len(t, tracks, 1)
	assert.Equal(t, "new", tracks[0].Notes)
	assert.True(t, tracks[0].Notify)
}

func TestSynthesize_StableNameAndPriceRange(t *testing.T) {
	name, price := synthesize("https://www.shop.example/p/usb-c-hub")
	assert.Equal(t, "usb c hub", name)
	assert.GreaterOrEqual(t, price, 10.0)
	assert.Less(t, price, 500.0)

	name2, price2 := synthesize("https://www.shop.example/p/usb-c-hub")
	assert.Equal(t, name, name2)
	assert.Equal(t, price, price2)

	// Host fallback when there is no path.
	name3, _ := synthesize("https://www.shop.example")
	assert.Equal(t, "shop.example", name3)
}
