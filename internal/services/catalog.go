package services

import (
	"context"

	"mtdstore-client/config"
	"mtdstore-client/internal/api"
	"mtdstore-client/internal/models"
	"mtdstore-client/internal/store"
	"mtdstore-client/internal/utils"
)

// ProductForm carries the seller's product input before validation.
// Image is a URL; when empty on create the default catalog image is
// used, and on update the existing image is kept.
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Image       string
}

// CatalogService handles the seller's product management: listing,
// editing, and removing products, with client-side validation before
// any request goes out.
type CatalogService struct {
	client *api.Client
	store  *store.Store
	cfg    *config.Config
}

// NewCatalogService creates the seller catalog service.
func NewCatalogService(client *api.Client, st *store.Store, cfg *config.Config) *CatalogService {
	return &CatalogService{client: client, store: st, cfg: cfg}
}

func (s *CatalogService) validateForm(form ProductForm) error {
	if err := utils.RequireNonEmpty("name", form.Name); err != nil {
		return err
	}
	if err := utils.RequireNonEmpty("description", form.Description); err != nil {
		return err
	}
	if err := utils.RequirePositiveFloat("price", form.Price); err != nil {
		return err
	}
	return utils.RequirePositiveInt("quantity", form.Quantity)
}

// AddProduct validates the form, lists the product under the current
// seller identity, and refreshes the catalog mirror.
func (s *CatalogService) AddProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	identity, ok := s.store.Identity()
	if !ok {
		return nil, utils.NewValidationError("session", "please login to add products")
	}

	image := s.cfg.DefaultProductImage
	if form.Image != "" && utils.IsValidURL(form.Image) {
		image = form.Image
	}

	product, err := s.client.CreateProduct(ctx, api.ProductRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Quantity:    form.Quantity,
		Image:       image,
		Seller:      identity.Username,
		SellerID:    identity.Username,
		Category:    "general",
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.RefreshProducts(ctx); err != nil {
		return product, err
	}
	return product, nil
}

// UpdateProduct validates the form and updates an existing product.
// When no new image is supplied the existing one is kept.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, form ProductForm) (*models.Product, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	image := form.Image
	if image == "" || !utils.IsValidURL(image) {
		if existing, ok := s.store.ProductByID(id); ok {
			image = existing.Image
		}
	}

	product, err := s.client.UpdateProduct(ctx, id, api.ProductRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Quantity:    form.Quantity,
		Image:       image,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.RefreshProducts(ctx); err != nil {
		return product, err
	}
	return product, nil
}

// DeleteProduct removes a product and refreshes the catalog mirror.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return s.store.RefreshProducts(ctx)
}
