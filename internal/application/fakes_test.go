package application_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/ordercraft/ordercraft/internal/domain"
)

type fakeCustomers struct {
	customers []domain.Customer
	err       error
	calls     atomic.Int32
}

func (f *fakeCustomers) ListCustomers(_ context.Context, _ int) ([]domain.Customer, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.customers, nil
}

type fakeProducts struct {
	products   []domain.Product
	err        error
	lastStatus string
}

func (f *fakeProducts) ListProducts(_ context.Context, _ int, status string) ([]domain.Product, error) {
	f.lastStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

// fakeOrders records payloads. When release is non-nil CreateOrder blocks
// until it is closed.
type fakeOrders struct {
	mu       sync.Mutex
	payloads []domain.OrderRequest
	err      error
	conf     domain.OrderConfirmation
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeOrders) CreateOrder(_ context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return domain.OrderConfirmation{}, f.err
	}
	return f.conf, nil
}

func (f *fakeOrders) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type notice struct {
	level   domain.NoticeLevel
	message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *recordingNotifier) Notify(level domain.NoticeLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{level, message})
}

func (n *recordingNotifier) all() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notice(nil), n.notices...)
}

type memJournal struct {
	entries []domain.JournalEntry
	err     error
}

func (j *memJournal) Record(e domain.JournalEntry) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, e)
	return nil
}

func (j *memJournal) Load() ([]domain.JournalEntry, error) { return j.entries, nil }

var errUnavailable = errors.New("service unavailable")

func sampleCustomers() []domain.Customer {
	return []domain.Customer{
		{ID: "c1", Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0101"},
		{ID: "c2", Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0102"},
	}
}

func sampleProducts() []domain.Product {
	stock := 4
	return []domain.Product{
		{ID: "1", Name: "Espresso Beans", SKU: "COF-1", Price: decimal.NewFromInt(100), Stock: &stock},
		{ID: "2", Name: "Green Tea", SKU: "TEA-1", Price: decimal.RequireFromString("12.50")},
		{ID: "3", Name: "Milk Frother", SKU: "ACC-1", Price: decimal.RequireFromString("400")},
	}
}
