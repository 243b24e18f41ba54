package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"mtdstore-client/config"
	"mtdstore-client/internal/api"
	"mtdstore-client/internal/apitest"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/store"
	"mtdstore-client/internal/utils"
)

type WorkflowTestSuite struct {
	suite.Suite
	srv      *apitest.Server
	client   *api.Client
	store    *store.Store
	workflow *OrderWorkflow
	ctx      context.Context
}

func (s *WorkflowTestSuite) SetupTest() {
	s.srv = apitest.New()
	s.srv.SeedProducts(
		models.Product{ID: 7, Name: "Tomatoes", Price: 50, Quantity: 20, Seller: "Ramesh Farm", SellerID: "ramesh"},
		models.Product{ID: 8, Name: "Onions", Price: 30, Quantity: 0, Seller: "Ramesh Farm", SellerID: "ramesh"},
	)
	s.srv.SeedUPI("ramesh", "ramesh@okaxis")

	cfg := &config.Config{
		APIBaseURL:           s.srv.URL(),
		RequestTimeout:       5 * time.Second,
		RateLimitRequests:    100,
		RateLimitWindow:      time.Second,
		CommissionRate:       0.05,
		DeliveryWindow:       24 * time.Hour,
		CountdownTick:        10 * time.Millisecond,
		PaymentRedirectDelay: 150 * time.Millisecond,
		DefaultUPIID:         "seller@upi",
	}

	client, err := api.NewClient(cfg)
	s.Require().NoError(err)
	s.client = client
	s.store = store.New(client)
	s.workflow = NewOrderWorkflow(client, s.store, cfg)
	s.ctx = context.Background()

	s.Require().NoError(s.store.RefreshAll(s.ctx))
	s.store.SetIdentity(store.Identity{Username: "alice", Role: models.RoleBuyer})
}

func (s *WorkflowTestSuite) TearDownTest() {
	s.workflow.Reset()
	s.srv.Close()
}

func (s *WorkflowTestSuite) TestSelectStartsAtOne() {
	sel, err := s.workflow.Select(7)
	s.Require().NoError(err)
	s.Equal(1, sel.Quantity)
	s.Equal(50.0, sel.Total)
	s.Equal(StateSelecting, s.workflow.State())
}

func (s *WorkflowTestSuite) TestSelectOutOfStock() {
	_, err := s.workflow.Select(8)
	s.Require().Error(err)
	var vErr *utils.ValidationError
	s.ErrorAs(err, &vErr)
	s.Equal(StateBrowsing, s.workflow.State())
}

func (s *WorkflowTestSuite) TestSelectUnknownProduct() {
	_, err := s.workflow.Select(999)
	var vErr *utils.ValidationError
	s.ErrorAs(err, &vErr)
}

func (s *WorkflowTestSuite) TestQuantityClampsAtBounds() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)

	// Below 1 is a silent no-op.
	sel, err := s.workflow.DecreaseQuantity()
	s.Require().NoError(err)
	s.Equal(1, sel.Quantity)
	s.Equal(50.0, sel.Total)

	// Above stock is a silent no-op too.
	sel, err = s.workflow.SetQuantity(100)
	s.Require().NoError(err)
	s.Equal(20, sel.Quantity)

	sel, err = s.workflow.IncreaseQuantity()
	s.Require().NoError(err)
	s.Equal(20, sel.Quantity)
	s.Equal(1000.0, sel.Total)
}

func (s *WorkflowTestSuite) TestTotalTracksQuantity() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)

	sel, err := s.workflow.SetQuantity(3)
	s.Require().NoError(err)
	s.Equal(3, sel.Quantity)
	s.Equal(150.0, sel.Total)

	sel, err = s.workflow.IncreaseQuantity()
	s.Require().NoError(err)
	s.Equal(4, sel.Quantity)
	s.Equal(200.0, sel.Total)
}

func (s *WorkflowTestSuite) TestPlaceOrderRejectsStaleQuantity() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	_, err = s.workflow.SetQuantity(5)
	s.Require().NoError(err)

	// Stock drops server-side and the catalog refresh brings it in.
	s.srv.SeedProducts(
		models.Product{ID: 7, Name: "Tomatoes", Price: 50, Quantity: 2, Seller: "Ramesh Farm", SellerID: "ramesh"},
	)
	s.Require().NoError(s.store.RefreshProducts(s.ctx))

	_, err = s.workflow.PlaceOrder(s.ctx)
	var vErr *utils.ValidationError
	s.Require().ErrorAs(err, &vErr)
	s.Contains(vErr.Message, "only 2 kg available")

	// Validation failures never reach the server.
	s.Equal(0, s.srv.Requests("POST /api/orders"))
	s.Equal(StateSelecting, s.workflow.State())
}

func (s *WorkflowTestSuite) TestPlaceOrderHappyPath() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	_, err = s.workflow.SetQuantity(3)
	s.Require().NoError(err)

	payment, err := s.workflow.PlaceOrder(s.ctx)
	s.Require().NoError(err)

	s.Equal(StateAwaitingPayment, s.workflow.State())
	s.NotZero(payment.Order.ID)
	s.Equal(150.0, payment.Order.Total)
	s.Equal("ramesh@okaxis", payment.SellerUPI)
	s.True(payment.Commission.Equal(decimal.NewFromFloat(7.5)),
		"commission was %s", payment.Commission)
	s.True(payment.SellerNet.Equal(decimal.NewFromFloat(142.5)),
		"seller net was %s", payment.SellerNet)
	s.Equal(1, ActiveCountdowns())
}

func (s *WorkflowTestSuite) TestSellerUPIFallsBackToDefault() {
	s.srv.SeedUPI("ramesh", "")

	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	payment, err := s.workflow.PlaceOrder(s.ctx)
	s.Require().NoError(err)
	s.Equal("seller@upi", payment.SellerUPI)
}

func (s *WorkflowTestSuite) TestServerRejectionReturnsToSelecting() {
	s.srv.RejectOrders = "Insufficient stock"

	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	_, err = s.workflow.PlaceOrder(s.ctx)

	var rejection *api.ServerRejection
	s.Require().ErrorAs(err, &rejection)
	s.Equal(StateSelecting, s.workflow.State())
}

func (s *WorkflowTestSuite) TestConfirmPaymentSuccess() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	_, err = s.workflow.SetQuantity(3)
	s.Require().NoError(err)
	payment, err := s.workflow.PlaceOrder(s.ctx)
	s.Require().NoError(err)

	resp, err := s.workflow.ConfirmPayment(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(resp.TransactionID)
	s.InDelta(7.5, resp.Commission, 1e-9)
	s.InDelta(142.5, resp.SellerAmount, 1e-9)
	s.Equal(StateDelivered, s.workflow.State())
	s.Equal(0, ActiveCountdowns())

	// The orders mirror was refreshed with the paid snapshot.
	var paid *models.Order
	for _, o := range s.store.Orders() {
		if o.ID == payment.Order.ID {
			paid = &o
			break
		}
	}
	s.Require().NotNil(paid)
	s.True(paid.Completed())
	s.Equal(models.OrderStatusProcessing, paid.Status)

	// After the redirect delay the workflow returns to browsing and
	// the draft is gone.
	s.Require().Eventually(func() bool {
		return s.workflow.State() == StateBrowsing
	}, time.Second, 5*time.Millisecond)
	_, ok := s.store.Draft()
	s.False(ok)
}

func (s *WorkflowTestSuite) TestConfirmPaymentFailureAllowsRetry() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	_, err = s.workflow.PlaceOrder(s.ctx)
	s.Require().NoError(err)

	s.srv.FailPayments = true
	_, err = s.workflow.ConfirmPayment(s.ctx)
	var rejection *api.ServerRejection
	s.Require().ErrorAs(err, &rejection)
	s.Equal(StateFailed, s.workflow.State())

	s.srv.FailPayments = false
	resp, err := s.workflow.ConfirmPayment(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(resp.TransactionID)
	s.Equal(StateDelivered, s.workflow.State())
}

func (s *WorkflowTestSuite) TestInFlightGuardSendsNothing() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)

	s.workflow.mu.Lock()
	s.workflow.inFlight = true
	s.workflow.mu.Unlock()

	_, err = s.workflow.PlaceOrder(s.ctx)
	s.Require().ErrorIs(err, ErrRequestInFlight)
	s.Equal(0, s.srv.Requests("POST /api/orders"))

	s.workflow.mu.Lock()
	s.workflow.inFlight = false
	s.workflow.mu.Unlock()
}

func (s *WorkflowTestSuite) TestReenteringPaymentKeepsOneCountdown() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	payment, err := s.workflow.PlaceOrder(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, ActiveCountdowns())

	// Entering the payment stage again replaces the countdown rather
	// than stacking a second ticker.
	s.workflow.mu.Lock()
	s.workflow.enterAwaitingPaymentLocked(s.ctx, payment.Order, "ramesh")
	s.workflow.mu.Unlock()

	s.Equal(1, ActiveCountdowns())
}

func (s *WorkflowTestSuite) TestCancelResetsEverything() {
	_, err := s.workflow.Select(7)
	s.Require().NoError(err)
	_, err = s.workflow.PlaceOrder(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, ActiveCountdowns())

	s.workflow.Cancel()

	s.Equal(StateBrowsing, s.workflow.State())
	s.Equal(0, ActiveCountdowns())
	_, ok := s.store.Draft()
	s.False(ok)
	_, ok = s.workflow.Payment()
	s.False(ok)
}

func (s *WorkflowTestSuite) TestAdjustQuantityOutsideSelecting() {
	_, err := s.workflow.IncreaseQuantity()
	s.Error(err)
	_, err = s.workflow.SetQuantity(5)
	s.Error(err)
	_, err = s.workflow.PlaceOrder(s.ctx)
	s.Error(err)
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}
