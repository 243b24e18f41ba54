package app

import (
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/services"
)

// View names a screen. Exactly one view is active at a time; the
// controller deactivates the current one unconditionally before
// activating the next.
type View int

const (
	ViewLogin View = iota
	ViewBuyerDashboard
	ViewSellerDashboard
	ViewAdminDashboard
	ViewOrder
	ViewPayment
	ViewOrderHistory
	ViewUPISettings
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewBuyerDashboard:
		return "buyer-dashboard"
	case ViewSellerDashboard:
		return "seller-dashboard"
	case ViewAdminDashboard:
		return "admin-dashboard"
	case ViewOrder:
		return "order"
	case ViewPayment:
		return "payment"
	case ViewOrderHistory:
		return "order-history"
	case ViewUPISettings:
		return "upi-settings"
	default:
		return "unknown"
	}
}

// dashboardFor maps a role to its entry view, chosen once at login.
func dashboardFor(role models.Role) View {
	switch role {
	case models.RoleSeller:
		return ViewSellerDashboard
	case models.RoleAdmin:
		return ViewAdminDashboard
	default:
		return ViewBuyerDashboard
	}
}

// SellerTab selects which seller dashboard section is shown.
type SellerTab int

const (
	TabMyProducts SellerTab = iota
	TabSalesAnalytics
)

// Action is a tagged user event consumed by the controller's
// transition table. Each variant carries exactly the data the
// transition needs; there is no stringly-typed dispatch.
type Action interface {
	isAction()
}

// LoginAction authenticates and enters the role dashboard.
type LoginAction struct {
	Username string
	Password string
}

// LogoutAction tears down the session from any view.
type LogoutAction struct{}

// RefreshAction re-fetches both cache mirrors and re-renders.
type RefreshAction struct{}

// BackAction returns to the role dashboard, aborting any in-progress
// purchase.
type BackAction struct{}

// SelectProductAction starts an order for a catalog product.
type SelectProductAction struct {
	ProductID int
}

// IncreaseQuantityAction bumps the draft quantity by one kg.
type IncreaseQuantityAction struct{}

// DecreaseQuantityAction lowers the draft quantity by one kg.
type DecreaseQuantityAction struct{}

// SetQuantityAction sets the draft quantity directly.
type SetQuantityAction struct {
	Quantity int
}

// PlaceOrderAction submits the draft order.
type PlaceOrderAction struct{}

// ConfirmPaymentAction confirms payment for the placed order. From the
// failed state it acts as a retry.
type ConfirmPaymentAction struct{}

// CancelPaymentAction aborts the purchase back to the buyer dashboard.
type CancelPaymentAction struct{}

// ShowOrderHistoryAction opens the buyer's order history.
type ShowOrderHistoryAction struct{}

// ShowSellerTabAction switches the seller dashboard section.
type ShowSellerTabAction struct {
	Tab SellerTab
}

// ShowUPISettingsAction opens the seller's UPI settings.
type ShowUPISettingsAction struct{}

// SaveUPIAction stores a new UPI ID for the seller.
type SaveUPIAction struct {
	UPIID string
}

// AddProductAction lists a new product for the seller.
type AddProductAction struct {
	Form services.ProductForm
}

// EditProductAction updates one of the seller's products.
type EditProductAction struct {
	ProductID int
	Form      services.ProductForm
}

// DeleteProductAction removes one of the seller's products.
type DeleteProductAction struct {
	ProductID int
}

// AddUserAction creates an account (admin only).
type AddUserAction struct {
	Username string
	Password string
	Role     models.Role
}

// RemoveUserAction deletes an account (admin only).
type RemoveUserAction struct {
	Username string
}

func (LoginAction) isAction()            {}
func (LogoutAction) isAction()           {}
func (RefreshAction) isAction()          {}
func (BackAction) isAction()             {}
func (SelectProductAction) isAction()    {}
func (IncreaseQuantityAction) isAction() {}
func (DecreaseQuantityAction) isAction() {}
func (SetQuantityAction) isAction()      {}
func (PlaceOrderAction) isAction()       {}
func (ConfirmPaymentAction) isAction()   {}
func (CancelPaymentAction) isAction()    {}
func (ShowOrderHistoryAction) isAction() {}
func (ShowSellerTabAction) isAction()    {}
func (ShowUPISettingsAction) isAction()  {}
func (SaveUPIAction) isAction()          {}
func (AddProductAction) isAction()       {}
func (EditProductAction) isAction()      {}
func (DeleteProductAction) isAction()    {}
func (RemoveUserAction) isAction()       {}
func (AddUserAction) isAction()          {}
