package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/phenrril/envatex/internal/domain"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
	err   error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: map[string]domain.User{}} }

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Save(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = uint(len(f.users) + 1)
	f.users[u.Username] = *u
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(subject, role string) (string, error) { return subject + "|" + role, nil }

func (fakeTokens) Verify(token string) (domain.Claims, error) {
	for i := 0; i < len(token); i++ {
		if token[i] == '|' {
			return domain.Claims{Subject: token[:i], Role: token[i+1:]}, nil
		}
	}
	return domain.Claims{}, domain.ErrUnauthorized
}

type fakeProducts struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]domain.Product
}

func newFakeProducts() *fakeProducts { return &fakeProducts{items: map[uint]domain.Product{}} }

func (f *fakeProducts) List(context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Product{}
	for _, p := range f.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProducts) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) NameOrSKUTaken(_ context.Context, name string, sku *string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.items {
		if id == excludeID {
			continue
		}
		if p.Name == name || (sku != nil && p.SKU != nil && *p.SKU == *sku) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeStorage struct {
	calls int
	err   error
}

func (f *fakeStorage) SaveImage(_ context.Context, filename string, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + filename, nil
}

type fakeQuotations struct {
	mu       sync.Mutex
	nextID   uint
	items    map[uint]domain.Quotation
	products *fakeProducts
	err      error
}

func newFakeQuotations(products *fakeProducts) *fakeQuotations {
	return &fakeQuotations{items: map[uint]domain.Quotation{}, products: products}
}

func (f *fakeQuotations) Create(ctx context.Context, q *domain.Quotation) error {
	if f.err != nil {
		return f.err
	}
	for _, it := range q.Items {
		if _, err := f.products.FindByID(ctx, *it.ProductID); err != nil {
			return domain.NewError(domain.ErrNotFound, "Producto no encontrado")
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	q.ID = f.nextID
	f.items[q.ID] = *q
	return nil
}

func (f *fakeQuotations) List(context.Context) ([]domain.Quotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.Quotation{}
	for _, q := range f.items {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeQuotations) FindByID(_ context.Context, id uint) (*domain.Quotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &q, nil
}

func (f *fakeQuotations) Respond(_ context.Context, id uint, response string) (*domain.Quotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	q.AdminResponse = &response
	q.Status = domain.QuotationStatusResponded
	f.items[id] = q
	return &q, nil
}

func (f *fakeQuotations) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeNotifier struct {
	outcome domain.EmailOutcome
	calls   int
}

func (f *fakeNotifier) Notify(context.Context, *domain.Quotation) domain.EmailOutcome {
	f.calls++
	return f.outcome
}

type fakeMailer struct {
	configured bool
	err        error
	to         string
	subject    string
	body       string
}

func (f *fakeMailer) Configured() bool { return f.configured }

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

var errBoom = errors.New("boom")

var admin = domain.Claims{Subject: "admin", Role: domain.RoleAdmin}
var visitor = domain.Claims{Subject: "someone", Role: "customer"}
