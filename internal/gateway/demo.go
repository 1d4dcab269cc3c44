package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/masknetdesign/mercado-online/internal/kvstore"
	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// demoGateway is the local substitute for the hosted backend, used when no
// real backend is configured. Products live as a JSON snapshot in the
// key-value store, seeded with the canonical demo catalogue on first use.
type demoGateway struct {
	mu     sync.Mutex
	kv     kvstore.Store
	logger zerolog.Logger
}

// NewDemo creates the demo gateway on top of kv.
func NewDemo(kv kvstore.Store, logger zerolog.Logger) Gateway {
	return &demoGateway{
		kv:     kv,
		logger: logger.With().Str("gateway", "demo").Logger(),
	}
}

// DemoProducts returns the demo catalogue seeded on first use.
func DemoProducts(now time.Time) []model.Product {
	return []model.Product{
		{ID: 1, Name: "Banana Prata", Description: "Banana prata fresca e doce", Price: decimal.RequireFromString("4.99"), Category: model.CategoryFrutas, ImageURL: "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=300&h=300&fit=crop", CreatedAt: now},
		{ID: 2, Name: "Coca-Cola 2L", Description: "Refrigerante Coca-Cola 2 litros", Price: decimal.RequireFromString("8.99"), Category: model.CategoryBebidas, ImageURL: "https://images.unsplash.com/photo-1554866585-cd94860890b7?w=300&h=300&fit=crop", CreatedAt: now},
		{ID: 3, Name: "Detergente Ypê", Description: "Detergente líquido neutro 500ml", Price: decimal.RequireFromString("2.49"), Category: model.CategoryLimpeza, ImageURL: "https://images.unsplash.com/photo-1585829365295-ab7cd400c167?w=300&h=300&fit=crop", CreatedAt: now},
		{ID: 4, Name: "Pão Francês", Description: "Pão francês fresquinho (kg)", Price: decimal.RequireFromString("12.90"), Category: model.CategoryPadaria, ImageURL: "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=300&h=300&fit=crop", CreatedAt: now},
		{ID: 5, Name: "Picanha", Description: "Picanha bovina premium (kg)", Price: decimal.RequireFromString("89.90"), Category: model.CategoryCarnes, ImageURL: "https://images.unsplash.com/photo-1546833999-b9f581a1996d?w=300&h=300&fit=crop", CreatedAt: now},
		{ID: 6, Name: "Maçã Gala", Description: "Maçã gala vermelha (kg)", Price: decimal.RequireFromString("7.99"), Category: model.CategoryFrutas, ImageURL: "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=300&h=300&fit=crop", CreatedAt: now},
	}
}

// load returns the stored catalogue, seeding it when absent. A corrupt
// snapshot is reseeded rather than surfaced.
func (g *demoGateway) load(ctx context.Context) ([]model.Product, error) {
	data, err := g.kv.Get(ctx, kvstore.KeyDemoProducts)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			return nil, fmt.Errorf("failed to read demo products: %w", err)
		}
		return g.seed(ctx)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		g.logger.Warn().Err(err).Msg("corrupt demo product snapshot, reseeding")
		return g.seed(ctx)
	}
	return products, nil
}

func (g *demoGateway) seed(ctx context.Context) ([]model.Product, error) {
	products := DemoProducts(time.Now())
	if err := g.save(ctx, products); err != nil {
		return nil, err
	}
	g.logger.Info().Int("count", len(products)).Msg("demo catalogue seeded")
	return products, nil
}

func (g *demoGateway) save(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to serialize demo products: %w", err)
	}
	if err := g.kv.Set(ctx, kvstore.KeyDemoProducts, data); err != nil {
		return fmt.Errorf("failed to persist demo products: %w", err)
	}
	return nil
}

// GetProducts returns the full catalogue.
func (g *demoGateway) GetProducts(ctx context.Context) ([]model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.load(ctx)
}

// AddProduct creates a product with the next free id.
func (g *demoGateway) AddProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	products, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	product := model.Product{
		ID:          maxID + 1,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		CreatedAt:   time.Now(),
	}

	// The catalogue is served newest first, so new products go to the head.
	products = append([]model.Product{product}, products...)
	if err := g.save(ctx, products); err != nil {
		return nil, err
	}

	g.logger.Debug().Int64("product_id", product.ID).Msg("product added")
	return &product, nil
}

// UpdateProduct overwrites the writable fields of an existing product.
func (g *demoGateway) UpdateProduct(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	products, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}

		products[i].Name = input.Name
		products[i].Description = input.Description
		products[i].Price = input.Price
		products[i].Category = input.Category
		products[i].ImageURL = input.ImageURL

		if err := g.save(ctx, products); err != nil {
			return nil, err
		}

		updated := products[i]
		return &updated, nil
	}

	return nil, model.ErrProductNotFound
}

// DeleteProduct removes a product and returns the removed record.
func (g *demoGateway) DeleteProduct(ctx context.Context, id int64) (*model.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	products, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}

		deleted := products[i]
		products = append(products[:i], products[i+1:]...)

		if err := g.save(ctx, products); err != nil {
			return nil, err
		}

		g.logger.Debug().Int64("product_id", id).Msg("product deleted")
		return &deleted, nil
	}

	return nil, model.ErrProductNotFound
}

// UploadImage runs the standard prechecks, then fabricates a placeholder
// URL; nothing leaves the machine in demo mode.
func (g *demoGateway) UploadImage(_ context.Context, upload model.ImageUpload) (string, error) {
	if err := PrecheckImage(upload); err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://images.unsplash.com/photo-%d?w=300&h=300&fit=crop", time.Now().UnixMilli())

	g.logger.Debug().
		Str("file", upload.FileName).
		Int64("size", upload.Size).
		Msg("demo upload simulated")

	return url, nil
}

// SignIn accepts any non-empty email and password in demo mode.
func (g *demoGateway) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, model.NewValidationError("Email e senha são obrigatórios")
	}

	user := model.User{ID: "demo-user", Email: email}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize demo user: %w", err)
	}
	if err := g.kv.Set(ctx, kvstore.KeyDemoUser, data); err != nil {
		return nil, fmt.Errorf("failed to persist demo session: %w", err)
	}

	g.logger.Info().Str("email", email).Msg("demo sign-in")
	return &user, nil
}

// SignOut ends the demo session.
func (g *demoGateway) SignOut(ctx context.Context) error {
	if err := g.kv.Delete(ctx, kvstore.KeyDemoUser); err != nil {
		return fmt.Errorf("failed to clear demo session: %w", err)
	}
	return nil
}

// CurrentUser returns the stored demo session user, or nil when signed out.
// A corrupt session record degrades to signed-out.
func (g *demoGateway) CurrentUser(ctx context.Context) (*model.User, error) {
	data, err := g.kv.Get(ctx, kvstore.KeyDemoUser)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read demo session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		g.logger.Warn().Err(err).Msg("corrupt demo session, treating as signed out")
		return nil, nil
	}
	return &user, nil
}
