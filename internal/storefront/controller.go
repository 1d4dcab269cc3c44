package storefront

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/masknetdesign/mercado-online/internal/cart"
	"github.com/masknetdesign/mercado-online/internal/catalog"
	"github.com/masknetdesign/mercado-online/internal/gateway"
	"github.com/masknetdesign/mercado-online/internal/model"
	"github.com/masknetdesign/mercado-online/internal/order"
	"github.com/masknetdesign/mercado-online/internal/settings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// featuredCount is how many catalogue entries the home view highlights.
const featuredCount = 6

// Controller owns the shopper-facing application state: the cached
// catalogue, the current filter/page selection and the cart. All state is
// explicit here; nothing lives in package globals.
type Controller struct {
	gw       gateway.Gateway
	cart     *cart.Store
	settings *settings.Service
	logger   zerolog.Logger

	// loading suppresses re-entrant catalogue loads: a second call while
	// one is outstanding is a logged no-op, never queued.
	loading atomic.Bool

	mu       sync.Mutex
	products []model.Product
	state    model.FilterState
	pageSize int
}

// New creates the storefront controller.
func New(gw gateway.Gateway, cartStore *cart.Store, settingsSvc *settings.Service, logger zerolog.Logger) *Controller {
	return &Controller{
		gw:       gw,
		cart:     cartStore,
		settings: settingsSvc,
		logger:   logger.With().Str("controller", "storefront").Logger(),
		state:    model.DefaultFilterState(),
		pageSize: catalog.DefaultPageSize,
	}
}

// Start restores persisted state (the cart snapshot) and performs the
// initial catalogue load. A failed load leaves an empty catalogue; the
// shopper can re-trigger it.
func (c *Controller) Start(ctx context.Context) {
	c.cart.Load(ctx)

	if err := c.LoadProducts(ctx); err != nil {
		c.logger.Error().Err(err).Msg("initial catalogue load failed")
	}
}

// LoadProducts fetches the catalogue through the gateway and replaces the
// cached copy. While a load is in flight, further calls are no-ops; exactly
// one gateway call results. On failure the cache is left unchanged.
func (c *Controller) LoadProducts(ctx context.Context) error {
	if !c.loading.CompareAndSwap(false, true) {
		c.logger.Debug().Msg("catalogue load already in flight, ignoring")
		return nil
	}
	defer c.loading.Store(false)

	products, err := c.gw.GetProducts(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load products")
		return fmt.Errorf("%w: %s", model.NewGatewayError("Erro ao carregar produtos"), err)
	}

	c.mu.Lock()
	c.products = products
	c.mu.Unlock()

	c.logger.Info().Int("count", len(products)).Msg("catalogue loaded")
	return nil
}

// SetCategory selects a category filter and resets to the first page.
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Category = category
	c.state.Page = 1
}

// SetSearch sets the search term and resets to the first page.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SearchTerm = term
	c.state.Page = 1
}

// SetPage selects the requested page; the view clamps it to what exists.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		page = 1
	}
	c.state.Page = page
}

// State returns the current filter selection.
func (c *Controller) State() model.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View derives the visible page from the cached catalogue and the current
// filter state: category first, then search, then pagination with clamping.
func (c *Controller) View() catalog.Page[model.Product] {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := catalog.Filter(c.products, c.state)
	return catalog.Paginate(filtered, c.pageSize, c.state.Page)
}

// Featured returns the first entries of the catalogue for the home view.
func (c *Controller) Featured() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := featuredCount
	if len(c.products) < n {
		n = len(c.products)
	}
	featured := make([]model.Product, n)
	copy(featured, c.products[:n])
	return featured
}

// AddToCart snapshots the product from the cached catalogue into the cart.
func (c *Controller) AddToCart(ctx context.Context, productID int64) error {
	c.mu.Lock()
	var product *model.Product
	for i := range c.products {
		if c.products[i].ID == productID {
			product = &c.products[i]
			break
		}
	}
	c.mu.Unlock()

	if product == nil {
		return model.ErrProductNotFound
	}
	return c.cart.Add(ctx, *product)
}

// AdjustQuantity changes a cart line's quantity by delta; zero or below
// removes the line.
func (c *Controller) AdjustQuantity(ctx context.Context, productID int64, delta int) error {
	return c.cart.AdjustQuantity(ctx, productID, delta)
}

// RemoveFromCart deletes a cart line.
func (c *Controller) RemoveFromCart(ctx context.Context, productID int64) error {
	return c.cart.Remove(ctx, productID)
}

// CartItems returns the current cart lines.
func (c *Controller) CartItems() []model.CartItem {
	return c.cart.Items()
}

// CartCount returns the badge count (sum of quantities).
func (c *Controller) CartCount() int {
	return c.cart.TotalCount()
}

// CartSubtotal returns the exact cart subtotal.
func (c *Controller) CartSubtotal() decimal.Decimal {
	return c.cart.Subtotal()
}

// Checkout composes the order message from the cart and the customer form,
// builds the WhatsApp deep link and clears the cart. A validation failure
// leaves the cart untouched.
func (c *Controller) Checkout(ctx context.Context, customer model.Customer) (*model.CheckoutResult, error) {
	items := c.cart.Items()

	message, err := order.Compose(items, customer, time.Now())
	if err != nil {
		return nil, err
	}

	number := c.settings.WhatsAppNumber(ctx)
	result := &model.CheckoutResult{
		Message:     message,
		WhatsAppURL: order.Link(number, message),
	}

	if err := c.cart.Clear(ctx); err != nil {
		// The order is already composed; a failed snapshot write should
		// not lose it. Log and hand the result back.
		c.logger.Error().Err(err).Msg("failed to clear cart after checkout")
	}

	c.logger.Info().
		Int("items", len(items)).
		Str("customer", customer.Name).
		Msg("order composed")

	return result, nil
}
