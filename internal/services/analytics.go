package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/store"
)

// SellerStats aggregates a seller's completed orders. Net revenue is
// always revenue minus commission over the same order set.
type SellerStats struct {
	TotalOrders     int
	TotalRevenue    decimal.Decimal
	TotalCommission decimal.Decimal
	NetRevenue      decimal.Decimal
	ProductsListed  int
}

// ProductSales is a per-product sales summary for seller and admin
// views.
type ProductSales struct {
	Product models.Product
	Orders  int
	SoldKg  int
	Revenue decimal.Decimal
}

// AdminOverview bundles the admin dashboard data. The counts come from
// the dedicated aggregate endpoints, not client-side recomputation.
type AdminOverview struct {
	Stats           models.AdminStats
	TotalCommission float64
	Users           []models.User
}

// AnalyticsService computes the role dashboard projections. Every
// method works on fresh snapshots from the view-model cache and
// recomputes from scratch; nothing is incrementally patched.
type AnalyticsService struct {
	client *api.Client
	store  *store.Store
}

// NewAnalyticsService creates the dashboard projection service.
func NewAnalyticsService(client *api.Client, st *store.Store) *AnalyticsService {
	return &AnalyticsService{client: client, store: st}
}

// Catalog returns the buyer-facing product grid snapshot.
func (s *AnalyticsService) Catalog() []models.Product {
	return s.store.Products()
}

// BuyerOrders fetches the order history for the given buyer, in the
// order the server returns it.
func (s *AnalyticsService) BuyerOrders(ctx context.Context, username string) ([]models.Order, error) {
	return s.client.UserOrders(ctx, username)
}

// SellerProducts returns the seller's own catalog subset with sold
// quantity and revenue summed over completed orders only.
func (s *AnalyticsService) SellerProducts(sellerID string) []ProductSales {
	orders := s.store.Orders()

	var out []ProductSales
	for _, p := range s.store.Products() {
		if p.SellerID != sellerID {
			continue
		}
		sales := ProductSales{Product: p, Revenue: decimal.Zero}
		for _, o := range orders {
			if o.ProductID != p.ID || !o.Completed() {
				continue
			}
			sales.Orders++
			sales.SoldKg += o.Quantity
			sales.Revenue = sales.Revenue.Add(decimal.NewFromFloat(o.Total))
		}
		out = append(out, sales)
	}
	return out
}

// SellerAnalytics aggregates the seller's completed orders.
func (s *AnalyticsService) SellerAnalytics(sellerID string) SellerStats {
	stats := SellerStats{
		TotalRevenue:    decimal.Zero,
		TotalCommission: decimal.Zero,
	}

	for _, p := range s.store.Products() {
		if p.SellerID == sellerID {
			stats.ProductsListed++
		}
	}
	for _, o := range s.store.Orders() {
		if o.Seller != sellerID || !o.Completed() {
			continue
		}
		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(decimal.NewFromFloat(o.Total))
		stats.TotalCommission = stats.TotalCommission.Add(decimal.NewFromFloat(o.Commission))
	}
	stats.NetRevenue = stats.TotalRevenue.Sub(stats.TotalCommission)
	return stats
}

// RecentSellerOrders returns the seller's last n completed orders in
// insertion order, displayed most-recent-first.
func (s *AnalyticsService) RecentSellerOrders(sellerID string, n int) []models.Order {
	var completed []models.Order
	for _, o := range s.store.Orders() {
		if o.Seller == sellerID && o.Completed() {
			completed = append(completed, o)
		}
	}
	return lastReversed(completed, n)
}

// TopProducts ranks the catalog by summed completed-order quantity,
// descending. The sort is stable: ties keep the original catalog
// order.
func (s *AnalyticsService) TopProducts(n int) []ProductSales {
	orders := s.store.Orders()

	ranked := make([]ProductSales, 0)
	for _, p := range s.store.Products() {
		sales := ProductSales{Product: p, Revenue: decimal.Zero}
		for _, o := range orders {
			if o.ProductID != p.ID || !o.Completed() {
				continue
			}
			sales.SoldKg += o.Quantity
			sales.Revenue = sales.Revenue.Add(decimal.NewFromFloat(o.Total))
		}
		ranked = append(ranked, sales)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SoldKg > ranked[j].SoldKg
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RecentActivity returns the last n completed orders platform-wide,
// most-recent-first.
func (s *AnalyticsService) RecentActivity(n int) []models.Order {
	var completed []models.Order
	for _, o := range s.store.Orders() {
		if o.Completed() {
			completed = append(completed, o)
		}
	}
	return lastReversed(completed, n)
}

// AdminOverview fetches the server-side aggregates and user list for
// the admin dashboard.
func (s *AnalyticsService) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	stats, err := s.client.AdminStats(ctx)
	if err != nil {
		return nil, err
	}
	commission, err := s.client.AdminCommission(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.client.AdminUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminOverview{
		Stats:           *stats,
		TotalCommission: commission,
		Users:           users,
	}, nil
}

// lastReversed takes the last n elements and reverses them, so the
// newest insertion comes first.
func lastReversed(orders []models.Order, n int) []models.Order {
	if len(orders) > n {
		orders = orders[len(orders)-n:]
	}
	out := make([]models.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		out = append(out, orders[i])
	}
	return out
}
