package devserver

import (
	"errors"
	"hash/fnv"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

var (
	errEmailTaken  = errors.New("email already registered")
	errNoSuchUser  = errors.New("no such user")
	errNoSuchEntry = errors.New("no such entry")
)

// userRecord is a stored account. The password hash never leaves the store.
type userRecord struct {
	models.User
	PasswordHash []byte
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// productRecord holds the catalog fields a product has independent of who
// tracks it.
type productRecord struct {
	ID           int64
	URL          string
	Name         string
	CurrentPrice float64
	LowestPrice  float64
	HighestPrice float64
	Source       string
	ImageURL     string
	CreatedAt    time.Time
	LastChecked  time.Time
}

// trackRecord is one user's tracking settings for one product.
type trackRecord struct {
	UserID         int64
	ProductID      int64
	Notes          string
	Notify         bool
	LowerThreshold *float64
	UpperThreshold *float64
}

// priceRecord is one recorded price point.
type priceRecord struct {
	ID        int64
	ProductID int64
	Price     float64
	Timestamp time.Time
}

// Store is the in-memory dataset behind the dev server. All access goes
// through its methods under a single mutex.
type Store struct {
	mu            sync.Mutex
	users         map[int64]*userRecord
	notifications map[int64]*models.Notification
	products      map[int64]*productRecord
	tracks        []*trackRecord
	prices        []*priceRecord
	nextID        map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*userRecord),
		notifications: make(map[int64]*models.Notification),
		products:      make(map[int64]*productRecord),
		nextID:        make(map[string]int64),
	}
}

func (s *Store) id(kind string) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

// users

func (s *Store) CreateUser(email string, passwordHash []byte) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, errEmailTaken
		}
	}
	u := &userRecord{
		User:         models.User{ID: s.id("user"), Email: email},
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UserByEmail(email string) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errNoSuchUser
}

func (s *Store) UserByID(id int64) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errNoSuchUser
	}
	return u, nil
}

func (s *Store) TouchLogin(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		now := time.Now().UTC()
		u.LastLogin = &now
	}
}

// notifications

func (s *Store) CreateNotification(n models.NotificationCreate) *models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := &models.Notification{
		ID:         s.id("notification"),
		FromUserID: n.FromUserID,
		UserID:     n.UserID,
		Message:    n.Message,
		CreatedAt:  time.Now().UTC(),
	}
	s.notifications[stored.ID] = stored
	return stored
}

// NotificationsFor returns the recipient's notifications, newest first.
func (s *Store) NotificationsFor(userID int64) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// SetNotificationRead updates the read flag of the recipient's notification.
func (s *Store) SetNotificationRead(id, userID int64, isRead bool) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return nil, errNoSuchEntry
	}
	n.IsRead = isRead
	copy := *n
	return &copy, nil
}

func (s *Store) DeleteNotification(id, userID int64) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return nil, errNoSuchEntry
	}
	delete(s.notifications, id)
	return n, nil
}

// products and prices

func (s *Store) ProductByURL(u string) (*productRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.URL == u {
			return p, true
		}
	}
	return nil, false
}

func (s *Store) ProductByID(id int64) (*productRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *Store) AllProducts() []*productRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*productRecord, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateProduct registers a catalog entry for the URL with a synthetic
// "scraped" name and price, and records the first price point. The real
// backend scrapes the page here; the dev server derives stable fake data
// from the URL instead.
func (s *Store) CreateProduct(rawURL, source string) *productRecord {
	name, price := synthesize(rawURL)
	now := time.Now().UTC()

	s.mu.Lock()
	p := &productRecord{
		ID:           s.id("product"),
		URL:          rawURL,
		Name:         name,
		CurrentPrice: price,
		LowestPrice:  price,
		HighestPrice: price,
		Source:       source,
		CreatedAt:    now,
		LastChecked:  now,
	}
	s.products[p.ID] = p
	s.prices = append(s.prices, &priceRecord{
		ID: s.id("price"), ProductID: p.ID, Price: price, Timestamp: now,
	})
	s.mu.Unlock()
	return p
}

// AddPrice appends a price point and folds it into the product's aggregates.
func (s *Store) AddPrice(productID int64, price float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return
	}
	s.prices = append(s.prices, &priceRecord{
		ID: s.id("price"), ProductID: productID, Price: price, Timestamp: at,
	})
	p.CurrentPrice = price
	if price < p.LowestPrice {
		p.LowestPrice = price
	}
	if price > p.HighestPrice {
		p.HighestPrice = price
	}
	if at.After(p.LastChecked) {
		p.LastChecked = at
	}
}

func (s *Store) Track(t *trackRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tracks {
		if existing.UserID == t.UserID && existing.ProductID == t.ProductID {
			*existing = *t
			return
		}
	}
	s.tracks = append(s.tracks, t)
}

func (s *Store) TrackFor(userID, productID int64) (*trackRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tracks {
		if t.UserID == userID && t.ProductID == productID {
			return t, true
		}
	}
	return nil, false
}

func (s *Store) TracksByUser(userID int64) []*trackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*trackRecord, 0)
	for _, t := range s.tracks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// SearchHistory joins price points with products and tracking users the way
// the backend's search endpoint does, newest first.
func (s *Store) SearchHistory(q models.PriceHistoryQuery, requester *userRecord) []models.PriceHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PriceHistoryEntry, 0)
	for _, pr := range s.prices {
		p, ok := s.products[pr.ProductID]
		if !ok {
			continue
		}
		for _, t := range s.tracks {
			if t.ProductID != p.ID {
				continue
			}
			if !requester.Admin && t.UserID != requester.ID {
				continue
			}
			if requester.Admin && q.UserFilter != 0 && t.UserID != q.UserFilter {
				continue
			}
			if q.ProductID != 0 && p.ID != q.ProductID {
				continue
			}
			if q.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Name)) {
				continue
			}
			if q.Notifications == models.NotificationsEnabled && !t.Notify {
				continue
			}
			if q.Notifications == models.NotificationsDisabled && t.Notify {
				continue
			}
			email := ""
			if u, ok := s.users[t.UserID]; ok {
				email = u.Email
			}
			out = append(out, models.PriceHistoryEntry{
				ID:            pr.ID,
				ProductID:     p.ID,
				ProductName:   p.Name,
				UserEmail:     email,
				Price:         pr.Price,
				Timestamp:     pr.Timestamp,
				Source:        p.Source,
				Notifications: t.Notify,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// synthesize derives a stable product name and base price from a URL.
func synthesize(rawURL string) (string, float64) {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		name = strings.TrimPrefix(u.Host, "www.")
		if seg := strings.Trim(u.Path, "/"); seg != "" {
			parts := strings.Split(seg, "/")
			name = strings.ReplaceAll(parts[len(parts)-1], "-", " ")
		}
	}
	h := fnv.New32a()
	h.Write([]byte(rawURL))
	price := 10 + float64(h.Sum32()%49000)/100 // 10.00 .. 499.99
	return name, price
}
