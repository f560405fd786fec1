// Package memory provides an in-process repository.Store used when no
// Postgres DSN is configured, and by service and handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

// NewStore returns an empty in-memory Store.
func NewStore() *repository.Store {
	return &repository.Store{
		Users:      &userRepository{byID: map[string]domain.User{}},
		Sessions:   &sessionRepository{byToken: map[string]domain.Session{}},
		Products:   &productRepository{byID: map[string]domain.Product{}},
		Orders:     &orderRepository{byID: map[string]domain.Order{}},
		Contacts:   &contactRepository{byID: map[string]domain.Contact{}},
		Newsletter: &newsletterRepository{byID: map[string]domain.NewsletterSubscription{}},
	}
}

// NewSeededStore returns an in-memory Store with the sample catalog loaded.
func NewSeededStore(ctx context.Context) (*repository.Store, error) {
	store := NewStore()
	if err := SeedCatalog(ctx, store.Products); err != nil {
		return nil, err
	}
	return store, nil
}

// clock lets records created in quick succession keep a strict order.
type clock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := time.Now().UTC()
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

var stamps clock

type userRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrAlreadyExists
		}
	}
	now := stamps.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.byID {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrAlreadyExists
		}
	}
	user.UpdatedAt = stamps.now()
	r.byID[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.byID {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type sessionRepository struct {
	mu      sync.Mutex
	byToken map[string]domain.Session
}

func (r *sessionRepository) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byToken[session.Token]; ok {
		return repository.ErrAlreadyExists
	}
	session.ID = uuid.NewString()
	session.CreatedAt = stamps.now()
	r.byToken[session.Token] = *session
	return nil
}

func (r *sessionRepository) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.byToken[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &session, nil
}

func (r *sessionRepository) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byToken[token]
	delete(r.byToken, token)
	return ok, nil
}

func (r *sessionRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for token, session := range r.byToken {
		if session.Expired(now) {
			delete(r.byToken, token)
			removed++
		}
	}
	return removed, nil
}

type productRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Product
}

func (r *productRepository) List(_ context.Context, category string) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool {
		return category == "" || p.Category == category
	}), nil
}

func (r *productRepository) ListFeatured(_ context.Context) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.Featured }), nil
}

func (r *productRepository) filter(keep func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	products := make([]domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		if keep(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products
}

func (r *productRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &product, nil
}

func (r *productRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = uuid.NewString()
	product.CreatedAt = stamps.now()
	r.byID[product.ID] = *product
	return nil
}

func (r *productRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[product.ID]
	if !ok {
		return repository.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	r.byID[product.ID] = *product
	return nil
}

func (r *productRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type orderRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Order
}

func (r *orderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = uuid.NewString()
	order.CreatedAt = stamps.now()
	stored := *order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	r.byID[order.ID] = stored
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &order, nil
}

func (r *orderRepository) List(_ context.Context) ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true }), nil
}

func (r *orderRepository) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.UserID != "" && o.UserID == userID }), nil
}

func (r *orderRepository) filter(keep func(domain.Order) bool) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]domain.Order, 0, len(r.byID))
	for _, o := range r.byID {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (r *orderRepository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	order.Status = status
	r.byID[id] = order
	return &order, nil
}

type contactRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Contact
}

func (r *contactRepository) Create(_ context.Context, contact *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact.ID = uuid.NewString()
	contact.CreatedAt = stamps.now()
	r.byID[contact.ID] = *contact
	return nil
}

func (r *contactRepository) List(_ context.Context) ([]domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contacts := make([]domain.Contact, 0, len(r.byID))
	for _, c := range r.byID {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}

func (r *contactRepository) UpdateStatus(_ context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contact, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	contact.Status = status
	r.byID[id] = contact
	return &contact, nil
}

type newsletterRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.NewsletterSubscription
}

func (r *newsletterRepository) Create(_ context.Context, sub *domain.NewsletterSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, sub.Email) {
			return repository.ErrAlreadyExists
		}
	}
	sub.ID = uuid.NewString()
	sub.CreatedAt = stamps.now()
	r.byID[sub.ID] = *sub
	return nil
}

func (r *newsletterRepository) List(_ context.Context) ([]domain.NewsletterSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]domain.NewsletterSubscription, 0, len(r.byID))
	for _, s := range r.byID {
		subs = append(subs, s)
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (r *newsletterRepository) UpdateStatusByEmail(_ context.Context, email string, status domain.SubscriptionStatus) (*domain.NewsletterSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sub := range r.byID {
		if strings.EqualFold(sub.Email, email) {
			sub.Status = status
			r.byID[id] = sub
			return &sub, nil
		}
	}
	return nil, repository.ErrNotFound
}
