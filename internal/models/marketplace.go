package models

// Role represents a user role in the marketplace
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller || r == RoleAdmin
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Order status values as the server records them
const (
	OrderStatusPendingPayment = "Pending Payment"
	OrderStatusProcessing     = "Processing"
)

// Product represents a catalog product. Prices are in rupees per kg,
// quantity is the remaining stock in kg. The client never mutates a
// product directly; it is replaced wholesale on every catalog refresh.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
	Seller      string  `json:"seller"`
	SellerID    string  `json:"sellerId"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// InStock reports whether the product can currently be ordered.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// Order represents a placed order. Server-assigned fields (ID,
// timestamps, transaction and commission data) are empty until the
// corresponding server response arrives.
type Order struct {
	ID               int           `json:"id"`
	ProductID        int           `json:"productId"`
	ProductName      string        `json:"productName"`
	ProductImage     string        `json:"productImage,omitempty"`
	Buyer            string        `json:"buyer"`
	Seller           string        `json:"seller"`
	Quantity         int           `json:"quantity"`
	Price            float64       `json:"price"`
	Total            float64       `json:"total"`
	Status           string        `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	OrderDate        string        `json:"order_date"`
	ExpectedDelivery string        `json:"expected_delivery,omitempty"`
	TransactionID    string        `json:"transaction_id,omitempty"`
	Commission       float64       `json:"commission,omitempty"`
	SellerAmount     float64       `json:"seller_amount,omitempty"`
	PaymentDate      string        `json:"payment_date,omitempty"`
}

// Completed reports whether the order has been paid for. All revenue
// and commission aggregates count completed orders only.
func (o *Order) Completed() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

// User represents a marketplace account as the admin endpoints list it
type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Status   string `json:"status"`
	JoinDate string `json:"joinDate"`
}

// AdminStats represents the platform-wide aggregates computed
// server-side and consumed verbatim by the admin dashboard
type AdminStats struct {
	TotalBuyers  int     `json:"total_buyers"`
	TotalSellers int     `json:"total_sellers"`
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}
