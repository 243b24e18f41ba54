package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"mtdstore-client/config"
	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/store"
	"mtdstore-client/internal/utils"
)

// State is the client-visible order/payment state.
type State int

const (
	StateBrowsing State = iota
	StateSelecting
	StatePlacing
	StateAwaitingPayment
	StatePaymentProcessing
	StateDelivered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateSelecting:
		return "selecting"
	case StatePlacing:
		return "placing"
	case StateAwaitingPayment:
		return "awaiting-payment"
	case StatePaymentProcessing:
		return "payment-processing"
	case StateDelivered:
		return "delivered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrRequestInFlight marks a duplicate submission while the previous
// one is still outstanding. Callers treat it as a silent no-op.
var ErrRequestInFlight = errors.New("request already in flight")

// Selection is an atomic snapshot of the draft: quantity and derived
// total always come from the same mutation, so no render can show a
// stale total next to a fresh quantity.
type Selection struct {
	Product  models.Product
	Quantity int
	Total    float64
}

// PaymentInfo describes the awaiting-payment stage for rendering. The
// commission split here is a display-only estimate; the authoritative
// values arrive with the payment response and the next order refresh.
type PaymentInfo struct {
	Order          models.Order
	SellerUPI      string
	Commission     decimal.Decimal
	SellerNet      decimal.Decimal
	DeliveryTarget time.Time
}

// OrderWorkflow drives the purchase state machine from product
// selection through quantity adjustment, order placement, simulated
// payment, and the delivery countdown. It is the only writer of the
// draft slot.
type OrderWorkflow struct {
	client *api.Client
	store  *store.Store
	cfg    *config.Config

	mu          sync.Mutex
	state       State
	payment     *PaymentInfo
	countdown   *Countdown
	inFlight    bool
	returnTimer *time.Timer

	now    func() time.Time
	onTick func(display string)
}

// NewOrderWorkflow creates the workflow in the browsing state.
func NewOrderWorkflow(client *api.Client, st *store.Store, cfg *config.Config) *OrderWorkflow {
	return &OrderWorkflow{
		client: client,
		store:  st,
		cfg:    cfg,
		state:  StateBrowsing,
		now:    time.Now,
	}
}

// SetCountdownHandler registers the sink for countdown display
// updates. The payment view owns it; replacing it affects only
// countdowns started afterwards.
func (w *OrderWorkflow) SetCountdownHandler(fn func(display string)) {
	w.mu.Lock()
	w.onTick = fn
	w.mu.Unlock()
}

// State returns the current workflow state.
func (w *OrderWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Select enters the selecting state for an in-stock product. Quantity
// starts at 1.
func (w *OrderWorkflow) Select(productID int) (Selection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateBrowsing && w.state != StateSelecting {
		return Selection{}, fmt.Errorf("cannot select a product while %s", w.state)
	}

	product, ok := w.store.ProductByID(productID)
	if !ok {
		return Selection{}, utils.NewValidationError("product", "not found in the catalog")
	}
	if !product.InStock() {
		return Selection{}, utils.NewValidationError("product", "is out of stock")
	}

	w.store.SetDraft(store.Draft{Product: product, Quantity: 1})
	w.state = StateSelecting
	return w.selectionLocked()
}

// Selection returns the current draft snapshot.
func (w *OrderWorkflow) Selection() (Selection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectionLocked()
}

func (w *OrderWorkflow) selectionLocked() (Selection, error) {
	draft, ok := w.store.Draft()
	if !ok {
		return Selection{}, fmt.Errorf("no product selected")
	}
	return Selection{
		Product:  draft.Product,
		Quantity: draft.Quantity,
		Total:    draft.Total(),
	}, nil
}

// IncreaseQuantity bumps the draft quantity by one kg. At the stock
// ceiling it is a no-op.
func (w *OrderWorkflow) IncreaseQuantity() (Selection, error) {
	return w.adjustQuantity(+1)
}

// DecreaseQuantity lowers the draft quantity by one kg. At 1 it is a
// no-op.
func (w *OrderWorkflow) DecreaseQuantity() (Selection, error) {
	return w.adjustQuantity(-1)
}

func (w *OrderWorkflow) adjustQuantity(delta int) (Selection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSelecting {
		return Selection{}, fmt.Errorf("no order in progress")
	}
	draft, ok := w.store.Draft()
	if !ok {
		return Selection{}, fmt.Errorf("no product selected")
	}

	next := draft.Quantity + delta
	if next >= 1 && next <= draft.Product.Quantity {
		draft.Quantity = next
		w.store.SetDraft(draft)
	}
	return w.selectionLocked()
}

// SetQuantity sets the draft quantity directly, clamped to the valid
// range [1, stock].
func (w *OrderWorkflow) SetQuantity(quantity int) (Selection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSelecting {
		return Selection{}, fmt.Errorf("no order in progress")
	}
	draft, ok := w.store.Draft()
	if !ok {
		return Selection{}, fmt.Errorf("no product selected")
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > draft.Product.Quantity {
		quantity = draft.Product.Quantity
	}
	draft.Quantity = quantity
	w.store.SetDraft(draft)
	return w.selectionLocked()
}

// PlaceOrder validates the draft against the last-known stock figure
// and submits it. The check is an optimistic pre-flight; the server
// remains authoritative. A second call while one is outstanding
// returns ErrRequestInFlight and sends nothing.
func (w *OrderWorkflow) PlaceOrder(ctx context.Context) (*PaymentInfo, error) {
	w.mu.Lock()
	if w.state != StateSelecting {
		w.mu.Unlock()
		return nil, fmt.Errorf("no order in progress")
	}
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrRequestInFlight
	}

	draft, ok := w.store.Draft()
	if !ok {
		w.mu.Unlock()
		return nil, fmt.Errorf("no product selected")
	}

	// Re-validate against the freshest stock figure the client has
	// seen; the draft copy may predate a catalog refresh.
	stock := draft.Product.Quantity
	if current, found := w.store.ProductByID(draft.Product.ID); found {
		stock = current.Quantity
	}
	if draft.Quantity <= 0 {
		w.mu.Unlock()
		return nil, utils.NewValidationError("quantity", "please select a valid quantity")
	}
	if draft.Quantity > stock {
		w.mu.Unlock()
		return nil, utils.NewValidationError("quantity", fmt.Sprintf("sorry, only %d kg available", stock))
	}

	identity, ok := w.store.Identity()
	if !ok {
		w.mu.Unlock()
		return nil, utils.NewValidationError("session", "please login to place an order")
	}

	req := api.OrderRequest{
		ProductID:    draft.Product.ID,
		ProductName:  draft.Product.Name,
		ProductImage: draft.Product.Image,
		Buyer:        identity.Username,
		Seller:       draft.Product.Seller,
		Quantity:     draft.Quantity,
		Price:        draft.Product.Price,
		Total:        draft.Total(),
	}
	w.inFlight = true
	w.state = StatePlacing
	w.mu.Unlock()

	order, err := w.client.CreateOrder(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		w.state = StateSelecting
		return nil, err
	}

	return w.enterAwaitingPaymentLocked(ctx, *order, draft.Product.SellerID), nil
}

// enterAwaitingPaymentLocked computes the display-only commission
// split and delivery target, fetches the seller UPI, and (re)starts
// the countdown. Any previous countdown is cancelled first, so two
// tickers can never run at once.
func (w *OrderWorkflow) enterAwaitingPaymentLocked(ctx context.Context, order models.Order, sellerID string) *PaymentInfo {
	upiID, err := w.client.SellerUPI(ctx, sellerID)
	if err != nil || upiID == "" {
		upiID = w.cfg.DefaultUPIID
	}

	total := decimal.NewFromFloat(order.Total)
	commission := total.Mul(decimal.NewFromFloat(w.cfg.CommissionRate))
	target := w.now().Add(w.cfg.DeliveryWindow)

	w.payment = &PaymentInfo{
		Order:          order,
		SellerUPI:      upiID,
		Commission:     commission,
		SellerNet:      total.Sub(commission),
		DeliveryTarget: target,
	}

	if w.countdown != nil {
		w.countdown.Stop()
	}
	w.countdown = NewCountdown(target, w.cfg.CountdownTick, w.now, w.onTick)
	w.countdown.Start()

	w.state = StateAwaitingPayment
	return w.payment
}

// Payment returns the awaiting-payment stage details.
func (w *OrderWorkflow) Payment() (PaymentInfo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.payment == nil {
		return PaymentInfo{}, false
	}
	return *w.payment, true
}

// ConfirmPayment submits the payment confirmation. On success the
// workflow refreshes the full cache and, after the configured display
// delay, returns to browsing. On failure it enters the failed state;
// the user may retry (ConfirmPayment again) or Cancel.
func (w *OrderWorkflow) ConfirmPayment(ctx context.Context) (*api.PaymentResponse, error) {
	w.mu.Lock()
	if w.state != StateAwaitingPayment && w.state != StateFailed {
		w.mu.Unlock()
		return nil, fmt.Errorf("no payment due")
	}
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	payment := w.payment
	if payment == nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("no payment due")
	}

	draft, _ := w.store.Draft()
	req := api.PaymentRequest{
		OrderID:  payment.Order.ID,
		Amount:   payment.Order.Total,
		SellerID: draft.Product.SellerID,
	}
	w.inFlight = true
	w.state = StatePaymentProcessing
	w.mu.Unlock()

	resp, err := w.client.ProcessPayment(ctx, req)

	w.mu.Lock()
	w.inFlight = false
	if err != nil {
		w.state = StateFailed
		w.mu.Unlock()
		return nil, err
	}

	if w.countdown != nil {
		w.countdown.Stop()
		w.countdown = nil
	}
	w.state = StateDelivered
	delay := w.cfg.PaymentRedirectDelay
	w.returnTimer = time.AfterFunc(delay, w.finishDelivered)
	w.mu.Unlock()

	// The dashboards must not show the order as paid until the server
	// snapshot says so: refresh both mirrors now.
	if err := w.store.RefreshAll(ctx); err != nil {
		return resp, err
	}
	return resp, nil
}

// finishDelivered closes out the delivered display and returns to
// browsing, discarding the draft.
func (w *OrderWorkflow) finishDelivered() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateDelivered {
		return
	}
	w.state = StateBrowsing
	w.payment = nil
	w.store.ClearDraft()
}

// Cancel aborts the purchase from any stage back to browsing. The
// draft is discarded and any running countdown is cancelled.
func (w *OrderWorkflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

// Reset is Cancel for session teardown (logout).
func (w *OrderWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *OrderWorkflow) resetLocked() {
	if w.countdown != nil {
		w.countdown.Stop()
		w.countdown = nil
	}
	if w.returnTimer != nil {
		w.returnTimer.Stop()
		w.returnTimer = nil
	}
	w.payment = nil
	w.state = StateBrowsing
	w.store.ClearDraft()
}
