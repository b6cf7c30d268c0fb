package domain

import "context"

// CustomerSource loads the customers an operator can pick from.
type CustomerSource interface {
	ListCustomers(ctx context.Context, pageSize int) ([]Customer, error)
}

// ProductSource loads the product catalog filtered by status.
type ProductSource interface {
	ListProducts(ctx context.Context, pageSize int, status string) ([]Product, error)
}

// OrderCreator submits a finalized order. It is the only mutating call.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error)
}

// Notifier receives user-facing notifications (toasts in the console).
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// ConfirmationJournal keeps a local record of submitted orders.
type ConfirmationJournal interface {
	Record(entry JournalEntry) error
	Load() ([]JournalEntry, error)
}

// ConfigLoader reads console configuration.
type ConfigLoader interface {
	Load(projectPath string) (ConsoleConfig, error)
}
