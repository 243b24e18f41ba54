package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"mtdstore-client/config"
	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/services"
	"mtdstore-client/internal/store"
)

// Controller owns the navigation state and dispatches user actions
// through the transition table. It holds the application state object
// (store) and the role services; dashboards read through it, and the
// only mutation path is cache-replace-on-fetch.
type Controller struct {
	cfg       *config.Config
	client    *api.Client
	store     *store.Store
	workflow  *services.OrderWorkflow
	analytics *services.AnalyticsService
	catalog   *services.CatalogService
	upi       *services.UPIService
	session   *services.SessionService
	admin     *services.AdminService

	out io.Writer

	mu        sync.Mutex
	view      View
	sellerTab SellerTab

	// redirectDelay pauses on the delivered display before returning
	// to the dashboard; tests zero it.
	redirectDelay time.Duration
}

// NewController wires the services together and registers the client
// hooks: 401 forces navigation back to the login view, transport
// errors surface as notifications.
func NewController(cfg *config.Config, client *api.Client, out io.Writer) *Controller {
	st := store.New(client)
	workflow := services.NewOrderWorkflow(client, st, cfg)

	c := &Controller{
		cfg:           cfg,
		client:        client,
		store:         st,
		workflow:      workflow,
		analytics:     services.NewAnalyticsService(client, st),
		catalog:       services.NewCatalogService(client, st, cfg),
		upi:           services.NewUPIService(client, st),
		session:       services.NewSessionService(client, st, workflow),
		admin:         services.NewAdminService(client),
		out:           out,
		view:          ViewLogin,
		redirectDelay: cfg.PaymentRedirectDelay,
	}

	client.SetNotifier(func(message string) {
		c.notify("error", message)
	})
	client.SetUnauthorizedHook(func() {
		c.notify("error", "Please login again.")
	})
	workflow.SetCountdownHandler(func(display string) {
		c.renderCountdownTick(display)
	})
	return c
}

// View returns the active view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Store exposes the application state for read-only callers.
func (c *Controller) Store() *store.Store {
	return c.store
}

// Workflow exposes the order/payment state machine.
func (c *Controller) Workflow() *services.OrderWorkflow {
	return c.workflow
}

// Show activates a view. Every other view is deactivated first: if an
// order or payment screen is being left for anything other than the
// other half of the purchase flow, the in-progress purchase is
// aborted, which discards the draft and cancels the countdown.
func (c *Controller) Show(ctx context.Context, v View) {
	c.mu.Lock()
	prev := c.view
	if inPurchaseFlow(prev) && !inPurchaseFlow(v) {
		c.workflow.Cancel()
	}
	c.view = v
	c.mu.Unlock()

	c.render(ctx, v)
}

func inPurchaseFlow(v View) bool {
	return v == ViewOrder || v == ViewPayment
}

// Dispatch runs one user action through the transition table. Errors
// are also surfaced to the user as notifications; the session always
// remains in a navigable state.
func (c *Controller) Dispatch(ctx context.Context, action Action) error {
	err := c.dispatch(ctx, action)
	if err != nil {
		if errors.Is(err, services.ErrRequestInFlight) {
			// Duplicate submission: ignored, nothing to report.
			return nil
		}
		c.notify("error", err.Error())
	}
	return err
}

func (c *Controller) dispatch(ctx context.Context, action Action) error {
	switch a := action.(type) {
	case LoginAction:
		return c.handleLogin(ctx, a)
	case LogoutAction:
		c.session.Logout(ctx)
		c.notify("success", "Logged out successfully")
		c.Show(ctx, ViewLogin)
		return nil
	case RefreshAction:
		if err := c.store.RefreshAll(ctx); err != nil {
			return err
		}
		c.render(ctx, c.View())
		return nil
	case BackAction:
		return c.handleBack(ctx)
	case SelectProductAction:
		return c.handleSelect(ctx, a.ProductID)
	case IncreaseQuantityAction:
		return c.renderSelection(c.workflow.IncreaseQuantity())
	case DecreaseQuantityAction:
		return c.renderSelection(c.workflow.DecreaseQuantity())
	case SetQuantityAction:
		return c.renderSelection(c.workflow.SetQuantity(a.Quantity))
	case PlaceOrderAction:
		return c.handlePlaceOrder(ctx)
	case ConfirmPaymentAction:
		return c.handleConfirmPayment(ctx)
	case CancelPaymentAction:
		c.Show(ctx, ViewBuyerDashboard)
		return nil
	case ShowOrderHistoryAction:
		if err := c.requireRole(models.RoleBuyer); err != nil {
			return err
		}
		c.Show(ctx, ViewOrderHistory)
		return nil
	case ShowSellerTabAction:
		if err := c.requireRole(models.RoleSeller); err != nil {
			return err
		}
		c.mu.Lock()
		c.sellerTab = a.Tab
		c.mu.Unlock()
		c.Show(ctx, ViewSellerDashboard)
		return nil
	case ShowUPISettingsAction:
		if err := c.requireRole(models.RoleSeller); err != nil {
			return err
		}
		c.Show(ctx, ViewUPISettings)
		return nil
	case SaveUPIAction:
		return c.handleSaveUPI(ctx, a.UPIID)
	case AddProductAction:
		return c.handleAddProduct(ctx, a.Form)
	case EditProductAction:
		return c.handleEditProduct(ctx, a.ProductID, a.Form)
	case DeleteProductAction:
		return c.handleDeleteProduct(ctx, a.ProductID)
	case AddUserAction:
		return c.handleAddUser(ctx, a)
	case RemoveUserAction:
		return c.handleRemoveUser(ctx, a.Username)
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
}

func (c *Controller) handleLogin(ctx context.Context, a LoginAction) error {
	identity, err := c.session.Login(ctx, a.Username, a.Password)
	if err != nil {
		return err
	}
	c.notify("success", fmt.Sprintf("Welcome back, %s!", identity.Username))
	c.Show(ctx, dashboardFor(identity.Role))
	return nil
}

func (c *Controller) handleBack(ctx context.Context) error {
	identity, ok := c.store.Identity()
	if !ok {
		c.Show(ctx, ViewLogin)
		return nil
	}
	c.Show(ctx, dashboardFor(identity.Role))
	return nil
}

func (c *Controller) handleSelect(ctx context.Context, productID int) error {
	if err := c.requireRole(models.RoleBuyer); err != nil {
		return err
	}
	if _, err := c.workflow.Select(productID); err != nil {
		return err
	}
	c.Show(ctx, ViewOrder)
	return nil
}

func (c *Controller) renderSelection(sel services.Selection, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Quantity: %d kg  |  Total: ₹%.2f\n", sel.Quantity, sel.Total)
	return nil
}

func (c *Controller) handlePlaceOrder(ctx context.Context) error {
	if _, err := c.workflow.PlaceOrder(ctx); err != nil {
		return err
	}
	c.notify("success", "Order created! Proceeding to payment...")
	c.Show(ctx, ViewPayment)
	return nil
}

func (c *Controller) handleConfirmPayment(ctx context.Context) error {
	resp, err := c.workflow.ConfirmPayment(ctx)
	if err != nil {
		return err
	}

	c.notify("success", fmt.Sprintf(
		"Payment successful! Transaction %s. Order will be delivered within 24 hours.",
		resp.TransactionID,
	))
	if c.redirectDelay > 0 {
		time.Sleep(c.redirectDelay)
	}
	c.Show(ctx, ViewBuyerDashboard)
	return nil
}

func (c *Controller) handleSaveUPI(ctx context.Context, upiID string) error {
	if err := c.requireRole(models.RoleSeller); err != nil {
		return err
	}
	if err := c.upi.Update(ctx, upiID); err != nil {
		return err
	}
	c.notify("success", "UPI ID updated successfully!")
	c.Show(ctx, ViewSellerDashboard)
	return nil
}

func (c *Controller) handleAddProduct(ctx context.Context, form services.ProductForm) error {
	if err := c.requireRole(models.RoleSeller); err != nil {
		return err
	}
	product, err := c.catalog.AddProduct(ctx, form)
	if err != nil {
		return err
	}
	c.notify("success", fmt.Sprintf("Product %q added successfully!", product.Name))
	c.render(ctx, c.View())
	return nil
}

func (c *Controller) handleEditProduct(ctx context.Context, id int, form services.ProductForm) error {
	if err := c.requireRole(models.RoleSeller); err != nil {
		return err
	}
	if _, err := c.catalog.UpdateProduct(ctx, id, form); err != nil {
		return err
	}
	c.notify("success", "Product updated successfully!")
	c.render(ctx, c.View())
	return nil
}

func (c *Controller) handleDeleteProduct(ctx context.Context, id int) error {
	if err := c.requireRole(models.RoleSeller); err != nil {
		return err
	}
	if err := c.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.notify("success", "Product deleted successfully")
	c.render(ctx, c.View())
	return nil
}

func (c *Controller) handleAddUser(ctx context.Context, a AddUserAction) error {
	if err := c.requireRole(models.RoleAdmin); err != nil {
		return err
	}
	if err := c.admin.AddUser(ctx, a.Username, a.Password, a.Role); err != nil {
		return err
	}
	c.notify("success", "User added successfully!")
	c.render(ctx, c.View())
	return nil
}

func (c *Controller) handleRemoveUser(ctx context.Context, username string) error {
	if err := c.requireRole(models.RoleAdmin); err != nil {
		return err
	}
	if err := c.admin.RemoveUser(ctx, username); err != nil {
		return err
	}
	c.notify("success", "User removed successfully")
	c.render(ctx, c.View())
	return nil
}

func (c *Controller) requireRole(role models.Role) error {
	identity, ok := c.store.Identity()
	if !ok {
		return fmt.Errorf("please login first")
	}
	if identity.Role != role {
		return fmt.Errorf("this action needs the %s role", role)
	}
	return nil
}

func (c *Controller) notify(kind, message string) {
	fmt.Fprintf(c.out, "[%s] %s\n", kind, message)
}

// renderCountdownTick prints countdown updates, but only while the
// payment view is the active one.
func (c *Controller) renderCountdownTick(display string) {
	if c.View() != ViewPayment {
		return
	}
	fmt.Fprintf(c.out, "Delivery in: %s\n", display)
}
