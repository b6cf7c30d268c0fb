package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordercraft/ordercraft/internal/domain"
	"github.com/ordercraft/ordercraft/internal/domain/catalog"
	"github.com/ordercraft/ordercraft/internal/domain/draft"
)

// WizardDeps are the collaborators a Wizard talks to. Journal may be nil.
type WizardDeps struct {
	Customers domain.CustomerSource
	Products  domain.ProductSource
	Orders    domain.OrderCreator
	Notifier  domain.Notifier
	Journal   domain.ConfirmationJournal
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) WizardOption {
	return func(w *Wizard) { w.logger = l }
}

// WithPageSizes sets how many customers and products are fetched on open.
func WithPageSizes(customers, products int) WizardOption {
	return func(w *Wizard) {
		w.customerPageSize = customers
		w.productPageSize = products
	}
}

// WithDefaults seeds the adjustments of every new draft.
func WithDefaults(adj domain.Adjustments) WizardOption {
	return func(w *Wizard) { w.defaults = adj }
}

// OnComplete registers a callback run after a successful submission.
func OnComplete(fn func(domain.OrderConfirmation)) WizardOption {
	return func(w *Wizard) { w.onComplete = append(w.onComplete, fn) }
}

// WithReferenceFunc overrides how the per-session order reference is generated.
func WithReferenceFunc(fn func() string) WizardOption {
	return func(w *Wizard) { w.newReference = fn }
}

// Wizard is the order composition state machine. It exclusively owns the
// draft; front ends only reach it through the named operations below.
//
// A mutex serialises operations. It is released while CreateOrder runs, so
// the draft stays inspectable during a submission; busy is the only guard
// across that call.
type Wizard struct {
	deps   WizardDeps
	logger *zap.Logger

	customerPageSize int
	productPageSize  int
	defaults         domain.Adjustments
	onComplete       []func(domain.OrderConfirmation)
	newReference     func() string

	mu        sync.Mutex
	step      domain.WizardStep
	draft     *draft.Draft
	busy      bool
	closed    bool
	session   uint64
	reference string
	customers []domain.Customer
	products  []domain.Product
}

// NewWizard builds a closed wizard; call Open to start a session.
func NewWizard(deps WizardDeps, opts ...WizardOption) *Wizard {
	w := &Wizard{
		deps:             deps,
		logger:           zap.NewNop(),
		customerPageSize: domain.DefaultCustomerPageSize,
		productPageSize:  domain.DefaultProductPageSize,
		defaults: domain.Adjustments{
			PaymentMethod: domain.PaymentMethodCash,
			PaymentStatus: domain.PaymentStatusPending,
		},
		newReference: uuid.NewString,
		closed:       true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open starts a fresh session: empty draft, first step, and one fetch of
// customers and products. A failed fetch leaves that list empty and sends a
// single warning; Open itself never fails because of it.
func (w *Wizard) Open(ctx context.Context) {
	w.mu.Lock()
	w.session++
	w.step = domain.StepCustomerSelection
	w.draft = draft.New(w.defaults)
	w.busy = false
	w.closed = false
	w.reference = w.newReference()
	w.customers = nil
	w.products = nil
	session, ref := w.session, w.reference
	w.mu.Unlock()

	w.logger.Info("order wizard opened", zap.String("reference", ref))
	w.load(ctx, session)
}

// Reload fetches customers and products again without touching the draft.
func (w *Wizard) Reload(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return domain.ErrWizardClosed
	}
	session := w.session
	w.mu.Unlock()

	w.load(ctx, session)
	return nil
}

func (w *Wizard) load(ctx context.Context, session uint64) {
	customers, custErr := w.deps.Customers.ListCustomers(ctx, w.customerPageSize)
	products, prodErr := w.deps.Products.ListProducts(ctx, w.productPageSize, domain.ProductStatusActive)

	w.mu.Lock()
	if w.closed || w.session != session {
		w.mu.Unlock()
		return
	}
	if custErr != nil {
		customers = nil
	}
	if prodErr != nil {
		products = nil
	}
	w.customers = customers
	w.products = products
	w.mu.Unlock()

	if custErr != nil {
		w.logger.Warn("loading customers failed", zap.Error(custErr))
		w.notify(domain.NoticeWarning, "Could not load customers. The list is empty; try reloading.")
	}
	if prodErr != nil {
		w.logger.Warn("loading products failed", zap.Error(prodErr))
		w.notify(domain.NoticeWarning, "Could not load products. The list is empty; try reloading.")
	}
}

// Next advances from customer selection to products and review. Without a
// selected customer it does nothing and returns false.
func (w *Wizard) Next() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false, domain.ErrWizardClosed
	}
	if w.step != domain.StepCustomerSelection || !w.draft.HasCustomer() {
		return false, nil
	}
	w.step = domain.StepProductsAndReview
	w.logger.Debug("wizard step changed", zap.String("step", string(w.step)))
	return true, nil
}

// Back returns to customer selection, keeping the draft.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWizardClosed
	}
	w.step = domain.StepCustomerSelection
	w.logger.Debug("wizard step changed", zap.String("step", string(w.step)))
	return nil
}

// SearchCustomers filters the customers loaded for this session.
func (w *Wizard) SearchCustomers(query string) ([]domain.Customer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, domain.ErrWizardClosed
	}
	return catalog.SearchCustomers(w.customers, query), nil
}

// SearchProducts filters the products loaded for this session.
func (w *Wizard) SearchProducts(query string) ([]domain.Product, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, domain.ErrWizardClosed
	}
	return catalog.SearchProducts(w.products, query), nil
}

// SelectCustomer picks a loaded customer by id.
func (w *Wizard) SelectCustomer(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWizardClosed
	}
	for _, c := range w.customers {
		if c.ID == id {
			w.draft.SetCustomer(c)
			w.logger.Debug("customer selected", zap.String("customer_id", id))
			return nil
		}
	}
	return fmt.Errorf("customer %q: %w", id, domain.ErrNotFound)
}

// AddProduct adds one unit of a loaded product to the cart.
func (w *Wizard) AddProduct(id string) error {
	return w.AddProductQuantity(id, 1)
}

// AddProductQuantity adds delta units of a loaded product to the cart.
func (w *Wizard) AddProductQuantity(id string, delta int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWizardClosed
	}
	p, ok := w.findProduct(id)
	if !ok {
		return fmt.Errorf("product %q: %w", id, domain.ErrNotFound)
	}
	if err := w.draft.AddLine(p, delta); err != nil {
		return err
	}
	w.logger.Debug("product added", zap.String("product_id", id), zap.Int("quantity", delta))
	return nil
}

// SetQuantity sets a line's quantity; below 1 removes the line.
func (w *Wizard) SetQuantity(id string, quantity int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWizardClosed
	}
	w.draft.SetQuantity(id, quantity)
	return nil
}

// RemoveProduct drops a line from the cart.
func (w *Wizard) RemoveProduct(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWizardClosed
	}
	w.draft.RemoveLine(id)
	return nil
}

// SetAdjustment updates one order-level field by name.
func (w *Wizard) SetAdjustment(field, value string) error {
	f, err := domain.ParseAdjustmentField(field)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.ErrWizardClosed
	}
	return w.draft.SetAdjustment(f, value)
}

// Submit validates the draft and sends it to the orders API.
//
// A second call while one is in flight returns domain.ErrAlreadySubmitting.
// Validation failures return before any network call and are checked before
// the step, so a draft without a customer reports domain.ErrMissingCustomer.
// On backend failure busy is cleared, the draft is kept for a retry and a
// *domain.SubmissionError is returned. On success the completion callbacks
// run and the wizard closes. If the wizard is cancelled while the call is
// outstanding the result is discarded and domain.ErrWizardClosed returned.
func (w *Wizard) Submit(ctx context.Context) (domain.OrderConfirmation, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return domain.OrderConfirmation{}, domain.ErrWizardClosed
	}
	if w.busy {
		w.mu.Unlock()
		return domain.OrderConfirmation{}, domain.ErrAlreadySubmitting
	}
	payload, err := w.draft.SubmissionPayload(w.reference)
	if err != nil {
		w.mu.Unlock()
		return domain.OrderConfirmation{}, err
	}
	if w.step != domain.StepProductsAndReview {
		w.mu.Unlock()
		return domain.OrderConfirmation{}, domain.ErrWrongStep
	}
	w.busy = true
	session := w.session
	w.mu.Unlock()

	w.logger.Info("submitting order",
		zap.String("reference", payload.Reference),
		zap.String("customer_id", payload.CustomerID),
		zap.Int("lines", len(payload.Items)),
		zap.String("total", payload.Total.String()),
	)
	conf, err := w.deps.Orders.CreateOrder(ctx, payload)

	w.mu.Lock()
	if w.closed || w.session != session {
		w.mu.Unlock()
		w.logger.Info("discarding submission result of closed wizard", zap.String("reference", payload.Reference))
		return domain.OrderConfirmation{}, domain.ErrWizardClosed
	}
	w.busy = false
	if err != nil {
		w.mu.Unlock()
		subErr := domain.NewSubmissionError(err)
		w.logger.Error("order submission failed", zap.String("reference", payload.Reference), zap.Error(err))
		w.notify(domain.NoticeError, subErr.Message)
		return domain.OrderConfirmation{}, subErr
	}
	w.closed = true
	w.draft = nil
	w.customers = nil
	w.products = nil
	w.mu.Unlock()

	w.logger.Info("order created",
		zap.String("reference", payload.Reference),
		zap.String("order_id", conf.ID),
	)
	w.record(payload, conf)
	w.notify(domain.NoticeSuccess, successMessage(conf))
	for _, fn := range w.onComplete {
		fn(conf)
	}
	return conf, nil
}

// Cancel closes the wizard and discards its state. Any in-flight submission
// keeps running but its result is ignored.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.busy = false
	w.draft = nil
	w.customers = nil
	w.products = nil
	w.logger.Info("order wizard cancelled", zap.String("reference", w.reference))
}

// Step returns the current step.
func (w *Wizard) Step() domain.WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Busy reports whether a submission is in flight.
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Closed reports whether the wizard has been cancelled or submitted.
func (w *Wizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Snapshot returns a copy of the current state for rendering.
func (w *Wizard) Snapshot() (domain.WizardSnapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return domain.WizardSnapshot{}, domain.ErrWizardClosed
	}

	snap := domain.WizardSnapshot{
		Reference:   w.reference,
		Step:        w.step,
		Busy:        w.busy,
		Lines:       w.draft.Lines(),
		Adjustments: w.draft.Adjustments(),
		Totals:      w.draft.Totals(),
	}
	if c, ok := w.draft.Customer(); ok {
		snap.Customer = &c
	}
	snap.CanAdvance = w.step == domain.StepCustomerSelection && snap.Customer != nil
	snap.CanSubmit = w.step == domain.StepProductsAndReview && !w.busy && w.draft.Validate() == nil
	return snap, nil
}

// Customers returns the customers loaded for this session.
func (w *Wizard) Customers() []domain.Customer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Customer(nil), w.customers...)
}

// Products returns the products loaded for this session.
func (w *Wizard) Products() []domain.Product {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Product(nil), w.products...)
}

func (w *Wizard) findProduct(id string) (domain.Product, bool) {
	for _, p := range w.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (w *Wizard) notify(level domain.NoticeLevel, msg string) {
	if w.deps.Notifier != nil {
		w.deps.Notifier.Notify(level, msg)
	}
}

// record writes the journal entry. Failures are logged, never returned:
// the order already exists on the backend.
func (w *Wizard) record(payload domain.OrderRequest, conf domain.OrderConfirmation) {
	if w.deps.Journal == nil {
		return
	}
	entry := domain.JournalEntry{
		Timestamp:    time.Now().Format(time.RFC3339),
		Reference:    payload.Reference,
		OrderID:      conf.ID,
		OrderNumber:  conf.OrderNumber,
		CustomerID:   payload.CustomerID,
		CustomerName: payload.CustomerName,
		Lines:        len(payload.Items),
		Total:        payload.Total,
	}
	if err := w.deps.Journal.Record(entry); err != nil {
		w.logger.Warn("recording order in journal failed", zap.Error(err))
	}
}

func successMessage(conf domain.OrderConfirmation) string {
	if conf.OrderNumber != "" {
		return fmt.Sprintf("Order %s created", conf.OrderNumber)
	}
	if conf.ID != "" {
		return fmt.Sprintf("Order %s created", conf.ID)
	}
	return "Order created"
}
