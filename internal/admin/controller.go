// Package admin implements the operator-facing view model: session handling,
// product form validation, the two-step delete flow and store settings.
package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/masknetdesign/mercado-online/internal/gateway"
	"github.com/masknetdesign/mercado-online/internal/model"
	"github.com/masknetdesign/mercado-online/internal/settings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductForm is the raw admin product form. A zero ID means create; a
// non-zero ID edits the existing product. Image is optional: when present it
// is uploaded before the record is written, when absent an edit keeps the
// product's current image URL.
type ProductForm struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Category    string
	Image       *model.ImageUpload
}

// Stats summarises the catalogue for the admin dashboard.
type Stats struct {
	TotalProducts int       `json:"totalProducts"`
	LastCreatedAt time.Time `json:"lastCreatedAt"`
}

// Controller drives the admin panel against the backend gateway. It keeps
// its own catalogue cache, independent of the storefront's.
type Controller struct {
	gw       gateway.Gateway
	settings *settings.Service
	logger   zerolog.Logger

	loading atomic.Bool

	mu       sync.RWMutex
	products []model.Product
	pending  map[string]int64
}

func New(gw gateway.Gateway, settingsSvc *settings.Service, logger zerolog.Logger) *Controller {
	return &Controller{
		gw:       gw,
		settings: settingsSvc,
		logger:   logger.With().Str("component", "admin_controller").Logger(),
		pending:  make(map[string]int64),
	}
}

// Login authenticates the operator against the gateway.
func (c *Controller) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, model.NewValidationError("Informe e-mail e senha")
	}

	user, err := c.gw.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	c.logger.Info().Str("email", user.Email).Msg("operator signed in")
	return user, nil
}

func (c *Controller) Logout(ctx context.Context) error {
	if err := c.gw.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

func (c *Controller) CurrentUser(ctx context.Context) (*model.User, error) {
	return c.gw.CurrentUser(ctx)
}

// LoadProducts refreshes the admin catalogue cache. A second trigger while a
// load is outstanding is ignored; on failure the cache keeps its last good
// contents.
func (c *Controller) LoadProducts(ctx context.Context) error {
	if !c.loading.CompareAndSwap(false, true) {
		c.logger.Debug().Msg("catalogue load already in flight, ignoring")
		return nil
	}
	defer c.loading.Store(false)

	products, err := c.gw.GetProducts(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load products")
		return model.NewGatewayError("Erro ao carregar produtos")
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(products)).Msg("admin catalogue loaded")
	return nil
}

// Products returns the cached catalogue.
func (c *Controller) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// SaveProduct validates the form, uploads the image when one is attached and
// creates or updates the record. Validation failures happen before any
// gateway call.
func (c *Controller) SaveProduct(ctx context.Context, form ProductForm) (*model.Product, error) {
	input, err := c.validateForm(form)
	if err != nil {
		return nil, err
	}

	if form.Image != nil {
		url, err := c.gw.UploadImage(ctx, *form.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		input.ImageURL = url
	} else if form.ID != 0 {
		// Edit without a new image keeps the current one.
		if existing := c.cachedProduct(form.ID); existing != nil {
			input.ImageURL = existing.ImageURL
		}
	}

	var saved *model.Product
	if form.ID == 0 {
		saved, err = c.gw.AddProduct(ctx, input)
	} else {
		saved, err = c.gw.UpdateProduct(ctx, form.ID, input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	c.upsertCached(*saved)
	c.logger.Info().Int64("product_id", saved.ID).Str("name", saved.Name).Msg("product saved")
	return saved, nil
}

// RequestDelete starts the delete confirmation flow and returns the token the
// confirmation call must present.
func (c *Controller) RequestDelete(productID int64) (string, error) {
	if c.cachedProduct(productID) == nil {
		return "", model.ErrProductNotFound
	}

	token := uuid.NewString()

	c.mu.Lock()
	c.pending[token] = productID
	c.mu.Unlock()

	return token, nil
}

// ConfirmDelete executes a previously requested delete. Unknown or stale
// tokens are rejected.
func (c *Controller) ConfirmDelete(ctx context.Context, token string) (*model.Product, error) {
	c.mu.Lock()
	productID, ok := c.pending[token]
	if ok {
		delete(c.pending, token)
	}
	c.mu.Unlock()

	if !ok {
		return nil, model.NewValidationError("Confirmação de exclusão inválida ou expirada")
	}

	removed, err := c.gw.DeleteProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", productID, err)
	}

	c.removeCached(productID)
	c.logger.Info().Int64("product_id", productID).Msg("product deleted")
	return removed, nil
}

// CancelDelete discards a pending delete confirmation. Cancelling an unknown
// token is a no-op.
func (c *Controller) CancelDelete(token string) {
	c.mu.Lock()
	delete(c.pending, token)
	c.mu.Unlock()
}

// UploadImage stores a standalone image through the gateway and returns its
// public URL. Prechecks (content type, size cap) run inside the gateway
// before any I/O.
func (c *Controller) UploadImage(ctx context.Context, upload model.ImageUpload) (string, error) {
	url, err := c.gw.UploadImage(ctx, upload)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, nil
}

// WhatsAppNumber returns the configured order destination number.
func (c *Controller) WhatsAppNumber(ctx context.Context) string {
	return c.settings.WhatsAppNumber(ctx)
}

// SaveWhatsAppNumber validates and stores the order destination number.
func (c *Controller) SaveWhatsAppNumber(ctx context.Context, number string) error {
	return c.settings.SaveWhatsAppNumber(ctx, number)
}

// Stats summarises the cached catalogue for the dashboard.
func (c *Controller) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{TotalProducts: len(c.products)}
	for _, p := range c.products {
		if p.CreatedAt.After(stats.LastCreatedAt) {
			stats.LastCreatedAt = p.CreatedAt
		}
	}
	return stats
}

// ExportCSV renders the cached catalogue as CSV for download.
func (c *Controller) ExportCSV() ([]byte, error) {
	c.mu.RLock()
	products := c.products
	c.mu.RUnlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Nome", "Descrição", "Preço", "Categoria", "Criado em"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.Name,
			p.Description,
			p.Price.StringFixed(2),
			model.CategoryName(p.Category),
			p.CreatedAt.Format("02/01/2006"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Controller) validateForm(form ProductForm) (model.ProductInput, error) {
	if form.Name == "" {
		return model.ProductInput{}, model.NewValidationError("Nome do produto é obrigatório")
	}

	price, err := decimalFromForm(form.Price)
	if err != nil {
		return model.ProductInput{}, err
	}
	if !model.ValidCategory(form.Category) {
		return model.ProductInput{}, model.NewValidationError("Categoria inválida")
	}

	return model.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Category:    form.Category,
	}, nil
}

func (c *Controller) cachedProduct(id int64) *model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p
		}
	}
	return nil
}

func (c *Controller) upsertCached(p model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			return
		}
	}
	// New products go first, matching the newest-first catalogue order.
	c.products = append([]model.Product{p}, c.products...)
}

func (c *Controller) removeCached(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return
		}
	}
}
