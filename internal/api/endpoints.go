package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mtdstore-client/internal/models"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Success  bool        `json:"success"`
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	Message  string      `json:"message"`
	Token    string      `json:"token,omitempty"`
}

// CurrentUserResponse represents the active server-side session
type CurrentUserResponse struct {
	Success  bool        `json:"success"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// ProductRequest represents a product create/update payload
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
	Seller      string  `json:"seller,omitempty"`
	SellerID    string  `json:"sellerId,omitempty"`
	Category    string  `json:"category,omitempty"`
}

type productResponse struct {
	Success bool           `json:"success"`
	Product models.Product `json:"product"`
}

// OrderRequest represents an order placement payload. Total must equal
// Quantity * Price; the server assigns everything else.
type OrderRequest struct {
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage,omitempty"`
	Buyer        string  `json:"buyer"`
	Seller       string  `json:"seller"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
}

type orderResponse struct {
	Success bool         `json:"success"`
	Order   models.Order `json:"order"`
}

// PaymentRequest represents a payment confirmation payload
type PaymentRequest struct {
	OrderID  int     `json:"order_id"`
	Amount   float64 `json:"amount"`
	SellerID string  `json:"seller_id"`
}

// PaymentResponse represents a confirmed payment. Commission and
// seller amount are the authoritative server-computed values.
type PaymentResponse struct {
	Success          bool    `json:"success"`
	TransactionID    string  `json:"transaction_id"`
	Commission       float64 `json:"commission"`
	SellerAmount     float64 `json:"seller_amount"`
	ExpectedDelivery string  `json:"expected_delivery"`
}

type upiResponse struct {
	Success bool   `json:"success"`
	UPIID   string `json:"upi_id"`
}

// UPIRequest represents a seller UPI update payload
type UPIRequest struct {
	SellerID string `json:"seller_id"`
	UPIID    string `json:"upi_id"`
}

// UserRequest represents an admin add-user payload
type UserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type statsResponse struct {
	Success bool              `json:"success"`
	Stats   models.AdminStats `json:"stats"`
}

type commissionResponse struct {
	Success         bool    `json:"success"`
	TotalCommission float64 `json:"total_commission"`
}

// Login authenticates against the server and returns the confirmed
// identity. The cookie jar picks up any session cookie set here.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.Call(ctx, http.MethodPost, "/api/login", LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tears down the server-side session. Best effort: the caller
// clears local state regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.Call(ctx, http.MethodGet, "/logout", nil, nil)
}

// CurrentUser re-validates the session and returns its identity.
func (c *Client) CurrentUser(ctx context.Context) (*CurrentUserResponse, error) {
	var resp CurrentUserResponse
	if err := c.Call(ctx, http.MethodGet, "/api/current_user", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.Call(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct lists a new product and returns the server copy.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error) {
	var resp productResponse
	if err := c.Call(ctx, http.MethodPost, "/api/products", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int, req ProductRequest) (*models.Product, error) {
	var resp productResponse
	if err := c.Call(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// Orders fetches all orders.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.Call(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UserOrders fetches the orders placed by a buyer.
func (c *Client) UserOrders(ctx context.Context, username string) ([]models.Order, error) {
	var orders []models.Order
	path := "/api/orders/user/" + url.PathEscape(username)
	if err := c.Call(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SellerOrders fetches the orders received by a seller.
func (c *Client) SellerOrders(ctx context.Context, sellerID string) ([]models.Order, error) {
	var orders []models.Order
	path := "/api/orders/seller/" + url.PathEscape(sellerID)
	if err := c.Call(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder places an order and returns the persisted server copy,
// including the assigned ID and timestamps.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	var resp orderResponse
	if err := c.Call(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// ProcessPayment confirms payment for an order.
func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := c.Call(ctx, http.MethodPost, "/api/payment/process", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SellerUPI fetches a seller's payment collection identifier. An empty
// string means the seller has not configured one.
func (c *Client) SellerUPI(ctx context.Context, sellerID string) (string, error) {
	var resp upiResponse
	path := "/api/seller/upi?seller_id=" + url.QueryEscape(sellerID)
	if err := c.Call(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.UPIID, nil
}

// UpdateSellerUPI stores a seller's payment collection identifier.
func (c *Client) UpdateSellerUPI(ctx context.Context, sellerID, upiID string) error {
	return c.Call(ctx, http.MethodPost, "/api/seller/upi", UPIRequest{SellerID: sellerID, UPIID: upiID}, nil)
}

// AdminUsers lists every account on the platform.
func (c *Client) AdminUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.Call(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser creates an account.
func (c *Client) AddUser(ctx context.Context, req UserRequest) error {
	return c.Call(ctx, http.MethodPost, "/api/admin/users", req, nil)
}

// DeleteUser removes an account by username.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	return c.Call(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(username), nil, nil)
}

// AdminStats fetches the server-computed platform aggregates.
func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var resp statsResponse
	if err := c.Call(ctx, http.MethodGet, "/api/admin/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

// AdminCommission fetches the total platform commission earned.
func (c *Client) AdminCommission(ctx context.Context) (float64, error) {
	var resp commissionResponse
	if err := c.Call(ctx, http.MethodGet, "/api/admin/commission", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalCommission, nil
}
