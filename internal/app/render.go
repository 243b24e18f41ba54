package app

import (
	"context"
	"fmt"

	"mtdstore-client/internal/models"
	"mtdstore-client/internal/utils"
)

// render draws the active view from fresh state snapshots. Views are
// always redrawn from scratch, never patched.
func (c *Controller) render(ctx context.Context, v View) {
	switch v {
	case ViewLogin:
		c.renderLogin()
	case ViewBuyerDashboard:
		c.renderBuyerDashboard()
	case ViewSellerDashboard:
		c.renderSellerDashboard()
	case ViewAdminDashboard:
		c.renderAdminDashboard(ctx)
	case ViewOrder:
		c.renderOrder()
	case ViewPayment:
		c.renderPayment()
	case ViewOrderHistory:
		c.renderOrderHistory(ctx)
	case ViewUPISettings:
		c.renderUPISettings(ctx)
	}
}

func (c *Controller) renderLogin() {
	fmt.Fprintln(c.out, "== MTD Store ==")
	fmt.Fprintln(c.out, "Login with: login <username> <password>")
}

func (c *Controller) renderBuyerDashboard() {
	products := c.analytics.Catalog()
	fmt.Fprintln(c.out, "== Fresh Products ==")
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products available. Check back later for fresh products from our farmers.")
		return
	}
	for _, p := range products {
		availability := stockBadge(p.Quantity)
		fmt.Fprintf(c.out, "[%d] %s — %s/kg — %d kg available (%s) — by %s\n",
			p.ID, p.Name, utils.FormatMoneyFloat(p.Price), p.Quantity, availability, p.Seller)
		if p.Quantity == 0 {
			fmt.Fprintln(c.out, "    (cannot be ordered)")
		}
	}
	fmt.Fprintln(c.out, "Commands: buy <id>, orders, refresh, logout")
}

func stockBadge(quantity int) string {
	switch {
	case quantity == 0:
		return "Out of Stock"
	case quantity < 10:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

func (c *Controller) renderOrder() {
	sel, err := c.workflow.Selection()
	if err != nil {
		c.notify("error", err.Error())
		return
	}
	p := sel.Product
	fmt.Fprintln(c.out, "== Place Order ==")
	fmt.Fprintf(c.out, "%s — %s\n", p.Name, p.Description)
	fmt.Fprintf(c.out, "Price: %s per kg  |  Seller: %s\n", utils.FormatMoneyFloat(p.Price), p.Seller)
	fmt.Fprintf(c.out, "Quantity: %d kg  |  Total: ₹%.2f\n", sel.Quantity, sel.Total)
	fmt.Fprintln(c.out, "Commands: + / - / qty <n>, place, back")
}

func (c *Controller) renderPayment() {
	payment, ok := c.workflow.Payment()
	if !ok {
		c.notify("error", "no payment due")
		return
	}
	fmt.Fprintln(c.out, "== Payment ==")
	fmt.Fprintf(c.out, "Order #%d  |  Amount: %s\n", payment.Order.ID, utils.FormatMoneyFloat(payment.Order.Total))
	fmt.Fprintf(c.out, "Pay to UPI: %s\n", payment.SellerUPI)
	fmt.Fprintf(c.out, "Platform commission (5%%): %s  |  Seller receives: %s\n",
		utils.FormatMoney(payment.Commission), utils.FormatMoney(payment.SellerNet))
	fmt.Fprintf(c.out, "Expected delivery: %s\n", utils.FormatTimestamp(payment.DeliveryTarget))
	fmt.Fprintln(c.out, "Commands: pay, cancel")
}

func (c *Controller) renderOrderHistory(ctx context.Context) {
	identity, ok := c.store.Identity()
	if !ok {
		c.notify("error", "please login first")
		return
	}
	orders, err := c.analytics.BuyerOrders(ctx, identity.Username)
	if err != nil {
		c.notify("error", "Failed to load orders: "+err.Error())
		return
	}

	fmt.Fprintln(c.out, "== My Orders ==")
	if len(orders) == 0 {
		fmt.Fprintln(c.out, "You haven't placed any orders yet.")
		return
	}
	for _, o := range orders {
		c.renderOrderLine(o)
	}
}

func (c *Controller) renderOrderLine(o models.Order) {
	paid := "Pending"
	if o.Completed() {
		paid = "Paid"
	}
	fmt.Fprintf(c.out, "#%d %s — %d kg — %s — %s — payment: %s — status: %s\n",
		o.ID, o.ProductName, o.Quantity, utils.FormatMoneyFloat(o.Total), o.OrderDate, paid, o.Status)
	if o.ExpectedDelivery != "" {
		fmt.Fprintf(c.out, "    expected delivery: %s\n", o.ExpectedDelivery)
	}
	if o.TransactionID != "" {
		fmt.Fprintf(c.out, "    transaction: %s\n", o.TransactionID)
	}
}

func (c *Controller) renderSellerDashboard() {
	identity, ok := c.store.Identity()
	if !ok {
		c.notify("error", "please login first")
		return
	}

	c.mu.Lock()
	tab := c.sellerTab
	c.mu.Unlock()

	switch tab {
	case TabSalesAnalytics:
		c.renderSellerAnalytics(identity.Username)
	default:
		c.renderSellerProducts(identity.Username)
	}
	fmt.Fprintln(c.out, "Commands: products, sales, upi, add ..., edit <id> ..., delete <id>, logout")
}

func (c *Controller) renderSellerProducts(sellerID string) {
	fmt.Fprintln(c.out, "== My Products ==")
	products := c.analytics.SellerProducts(sellerID)
	if len(products) == 0 {
		fmt.Fprintln(c.out, "You haven't added any products yet.")
		return
	}
	for _, ps := range products {
		p := ps.Product
		fmt.Fprintf(c.out, "[%d] %s — %s/kg — %d kg available — %d kg sold — %d orders — %s revenue\n",
			p.ID, p.Name, utils.FormatMoneyFloat(p.Price), p.Quantity, ps.SoldKg, ps.Orders,
			utils.FormatMoney(ps.Revenue))
	}
}

func (c *Controller) renderSellerAnalytics(sellerID string) {
	stats := c.analytics.SellerAnalytics(sellerID)
	fmt.Fprintln(c.out, "== Sales Analytics ==")
	fmt.Fprintf(c.out, "Total orders: %d  |  Products listed: %d\n", stats.TotalOrders, stats.ProductsListed)
	fmt.Fprintf(c.out, "Revenue: %s  |  Commission: %s  |  Net: %s\n",
		utils.FormatMoney(stats.TotalRevenue),
		utils.FormatMoney(stats.TotalCommission),
		utils.FormatMoney(stats.NetRevenue))

	fmt.Fprintln(c.out, "Recent orders:")
	recent := c.analytics.RecentSellerOrders(sellerID, 5)
	if len(recent) == 0 {
		fmt.Fprintln(c.out, "No orders yet")
		return
	}
	for _, o := range recent {
		fmt.Fprintf(c.out, "#%d %s — %s bought %d kg — %s (commission %s)\n",
			o.ID, o.ProductName, o.Buyer, o.Quantity,
			utils.FormatMoneyFloat(o.Total), utils.FormatMoneyFloat(o.Commission))
	}
}

func (c *Controller) renderAdminDashboard(ctx context.Context) {
	overview, err := c.analytics.AdminOverview(ctx)
	if err != nil {
		c.notify("error", "Failed to load admin data: "+err.Error())
		return
	}

	fmt.Fprintln(c.out, "== Admin Dashboard ==")
	fmt.Fprintf(c.out, "Buyers: %d  |  Sellers: %d  |  Orders: %d\n",
		overview.Stats.TotalBuyers, overview.Stats.TotalSellers, overview.Stats.TotalOrders)
	fmt.Fprintf(c.out, "Revenue: %s  |  Commission earned: %s\n",
		utils.FormatMoneyFloat(overview.Stats.TotalRevenue),
		utils.FormatMoneyFloat(overview.TotalCommission))

	fmt.Fprintln(c.out, "Top products:")
	top := c.analytics.TopProducts(3)
	if len(top) == 0 {
		fmt.Fprintln(c.out, "No sales data available")
	}
	for _, ps := range top {
		fmt.Fprintf(c.out, "  %s — %d kg sold — %s\n", ps.Product.Name, ps.SoldKg, utils.FormatMoney(ps.Revenue))
	}

	fmt.Fprintln(c.out, "Recent activity:")
	activity := c.analytics.RecentActivity(3)
	if len(activity) == 0 {
		fmt.Fprintln(c.out, "No recent activity")
	}
	for _, o := range activity {
		fmt.Fprintf(c.out, "  %s purchased %s — %d kg — %s\n",
			o.Buyer, o.ProductName, o.Quantity, utils.FormatMoneyFloat(o.Total))
	}

	fmt.Fprintln(c.out, "Users:")
	for _, u := range overview.Users {
		fmt.Fprintf(c.out, "  %-16s %-8s %-8s joined %s\n", u.Username, u.Role, u.Status, u.JoinDate)
	}
	fmt.Fprintln(c.out, "Commands: adduser <u> <p> <role>, rmuser <u>, refresh, logout")
}

func (c *Controller) renderUPISettings(ctx context.Context) {
	current, err := c.upi.Current(ctx)
	if err != nil {
		c.notify("error", "Failed to load UPI settings: "+err.Error())
		return
	}
	if current == "" {
		current = "Not set"
	}
	fmt.Fprintln(c.out, "== UPI Settings ==")
	fmt.Fprintf(c.out, "Current UPI ID: %s\n", current)
	fmt.Fprintln(c.out, "Commands: set <yourname@upi>, back")
}
