// Package apitest provides an in-process marketplace server for tests.
// It implements the same routes and JSON shapes as the production API
// so client-side code can be exercised over real HTTP.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"mtdstore-client/internal/models"
)

// Account is a login credential the stub server accepts.
type Account struct {
	Password string
	Role     models.Role
}

// Server is a configurable marketplace stub. Seed its fields before
// issuing requests; mutate its Fail* toggles to script failures.
// All exported methods are safe for concurrent use.
type Server struct {
	mu sync.Mutex

	products    []models.Product
	orders      []models.Order
	users       []models.User
	accounts    map[string]Account
	upi         map[string]string
	stats       models.AdminStats
	commission  float64
	nextOrderID int

	// Failure toggles, checked per request.
	RejectLogin  bool
	RejectOrders string // non-empty: order placement fails with this message
	FailPayments bool
	Unauthorized bool // every authenticated route returns 401
	LoginToken   string

	// Session reported by /api/current_user; empty means no session.
	SessionUsername string
	SessionRole     models.Role

	requests map[string]int
	srv      *httptest.Server
}

// New starts a stub server with empty state. Callers must Close it.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		accounts:    make(map[string]Account),
		upi:         make(map[string]string),
		requests:    make(map[string]int),
		nextOrderID: 100,
	}

	r := gin.New()
	r.Use(s.count)

	r.POST("/api/login", s.login)
	r.GET("/logout", s.logout)
	r.GET("/api/current_user", s.currentUser)
	r.GET("/api/products", s.listProducts)
	r.POST("/api/products", s.createProduct)
	r.PUT("/api/products/:id", s.updateProduct)
	r.DELETE("/api/products/:id", s.deleteProduct)
	r.GET("/api/orders", s.listOrders)
	r.GET("/api/orders/user/:username", s.userOrders)
	r.GET("/api/orders/seller/:seller", s.sellerOrders)
	r.POST("/api/orders", s.createOrder)
	r.POST("/api/payment/process", s.processPayment)
	r.GET("/api/seller/upi", s.getUPI)
	r.POST("/api/seller/upi", s.setUPI)
	r.GET("/api/admin/users", s.adminUsers)
	r.POST("/api/admin/users", s.addUser)
	r.DELETE("/api/admin/users/:username", s.deleteUser)
	r.GET("/api/admin/stats", s.adminStats)
	r.GET("/api/admin/commission", s.adminCommission)

	s.srv = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// Requests returns how many times "METHOD /path" was hit, counting the
// registered route pattern rather than the concrete URL.
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// TotalRequests returns the number of requests served so far.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.requests {
		total += n
	}
	return total
}

// SeedAccount registers a login credential.
func (s *Server) SeedAccount(username, password string, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = Account{Password: password, Role: role}
}

// SeedProducts replaces the catalog.
func (s *Server) SeedProducts(products ...models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]models.Product(nil), products...)
}

// SeedOrders replaces the order list.
func (s *Server) SeedOrders(orders ...models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]models.Order(nil), orders...)
}

// SeedUsers replaces the admin user listing.
func (s *Server) SeedUsers(users ...models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User(nil), users...)
}

// SeedUPI stores a seller's UPI ID.
func (s *Server) SeedUPI(sellerID, upiID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upi[sellerID] = upiID
}

// SeedStats sets the admin aggregates.
func (s *Server) SeedStats(stats models.AdminStats, commission float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	s.commission = commission
}

// AllOrders returns a copy of the current order list.
func (s *Server) AllOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.requests[c.Request.Method+" "+c.FullPath()]++
	unauthorized := s.Unauthorized
	s.mu.Unlock()

	if unauthorized && c.FullPath() != "/api/login" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
		return
	}
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[req.Username]
	reject := s.RejectLogin
	token := s.LoginToken
	s.mu.Unlock()

	if reject || !ok || account.Password != req.Password {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}
	resp := gin.H{
		"success":  true,
		"role":     account.Role,
		"username": req.Username,
		"message":  "Login successful",
	}
	if token != "" {
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

func (s *Server) currentUser(c *gin.Context) {
	s.mu.Lock()
	username, role := s.SessionUsername, s.SessionRole
	s.mu.Unlock()
	if username == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "username": username, "role": role})
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.products == nil {
		c.JSON(http.StatusOK, []models.Product{})
		return
	}
	c.JSON(http.StatusOK, s.products)
}

func (s *Server) createProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product"})
		return
	}
	s.mu.Lock()
	p.ID = len(s.products) + 1
	p.CreatedAt = time.Now().Format("2006-01-02 15:04:05")
	s.products = append(s.products, p)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (s *Server) updateProduct(c *gin.Context) {
	var in models.Product
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product"})
		return
	}
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if fmt.Sprint(s.products[i].ID) == id {
			in.ID = s.products[i].ID
			s.products[i] = in
			c.JSON(http.StatusOK, gin.H{"success": true, "product": in})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product not found"})
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if fmt.Sprint(s.products[i].ID) == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product not found"})
}

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		c.JSON(http.StatusOK, []models.Order{})
		return
	}
	c.JSON(http.StatusOK, s.orders)
}

func (s *Server) userOrders(c *gin.Context) {
	username := c.Param("username")
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := []models.Order{}
	for _, o := range s.orders {
		if o.Buyer == username {
			filtered = append(filtered, o)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

func (s *Server) sellerOrders(c *gin.Context) {
	seller := c.Param("seller")
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := []models.Order{}
	for _, o := range s.orders {
		if o.Seller == seller {
			filtered = append(filtered, o)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

func (s *Server) createOrder(c *gin.Context) {
	var req models.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RejectOrders != "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": s.RejectOrders})
		return
	}
	req.ID = s.nextOrderID
	s.nextOrderID++
	req.Status = models.OrderStatusPendingPayment
	req.PaymentStatus = models.PaymentStatusPending
	req.OrderDate = time.Now().Format("2006-01-02 15:04:05")
	s.orders = append(s.orders, req)
	c.JSON(http.StatusOK, gin.H{"success": true, "order": req})
}

func (s *Server) processPayment(c *gin.Context) {
	var req struct {
		OrderID  int     `json:"order_id"`
		Amount   float64 `json:"amount"`
		SellerID string  `json:"seller_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPayments {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment declined"})
		return
	}

	commission := req.Amount * 0.05
	sellerAmount := req.Amount - commission
	delivery := time.Now().Add(24 * time.Hour).Format("2006-01-02 15:04:05")
	txn := fmt.Sprintf("TXN%d%d", req.OrderID, time.Now().UnixNano()%100000)

	for i := range s.orders {
		if s.orders[i].ID == req.OrderID {
			s.orders[i].PaymentStatus = models.PaymentStatusCompleted
			s.orders[i].Status = models.OrderStatusProcessing
			s.orders[i].TransactionID = txn
			s.orders[i].Commission = commission
			s.orders[i].SellerAmount = sellerAmount
			s.orders[i].ExpectedDelivery = delivery
			s.orders[i].PaymentDate = time.Now().Format("2006-01-02 15:04:05")
		}
	}
	s.commission += commission

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"transaction_id":    txn,
		"commission":        commission,
		"seller_amount":     sellerAmount,
		"expected_delivery": delivery,
	})
}

func (s *Server) getUPI(c *gin.Context) {
	sellerID := c.Query("seller_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "upi_id": s.upi[sellerID]})
}

func (s *Server) setUPI(c *gin.Context) {
	var req struct {
		SellerID string `json:"seller_id"`
		UPIID    string `json:"upi_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	s.mu.Lock()
	s.upi[req.SellerID] = req.UPIID
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "UPI updated"})
}

func (s *Server) adminUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		c.JSON(http.StatusOK, []models.User{})
		return
	}
	c.JSON(http.StatusOK, s.users)
}

func (s *Server) addUser(c *gin.Context) {
	var req struct {
		Username string      `json:"username"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	s.mu.Lock()
	s.accounts[req.Username] = Account{Password: req.Password, Role: req.Role}
	s.users = append(s.users, models.User{
		Username: req.Username,
		Role:     req.Role,
		Status:   "active",
		JoinDate: time.Now().Format("2006-01-02"),
	})
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User added"})
}

func (s *Server) deleteUser(c *gin.Context) {
	username := c.Param("username")
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, username)
	for i := range s.users {
		if s.users[i].Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

func (s *Server) adminStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": s.stats})
}

func (s *Server) adminCommission(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "total_commission": s.commission})
}
