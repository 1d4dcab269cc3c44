package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/masknetdesign/mercado-online/internal/model"
	"github.com/masknetdesign/mercado-online/internal/storefront"

	"github.com/rs/zerolog"
)

// StorefrontHandler handles shopper-facing HTTP requests.
type StorefrontHandler struct {
	controller *storefront.Controller
	logger     zerolog.Logger
}

// NewStorefrontHandler creates a new storefront handler.
func NewStorefrontHandler(controller *storefront.Controller, logger zerolog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		controller: controller,
		logger:     logger.With().Str("handler", "storefront").Logger(),
	}
}

// Products handles GET /api/products with category, search and page query
// parameters. Each request refreshes the catalogue cache first, like the
// original storefront fetching on every page load; the controller's load
// guard collapses concurrent refreshes into one gateway call.
func (h *StorefrontHandler) Products(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	if err := h.controller.LoadProducts(r.Context()); err != nil {
		writeError(w, err, h.logger)
		return
	}

	q := r.URL.Query()

	category := q.Get("category")
	if category == "" {
		category = model.CategoryAll
	}
	if category != model.CategoryAll && !model.ValidCategory(category) {
		writeError(w, model.NewValidationError("Categoria inválida"), h.logger)
		return
	}

	h.controller.SetCategory(category)
	h.controller.SetSearch(q.Get("search"))

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			writeError(w, model.NewValidationError("Parâmetro page inválido"), h.logger)
			return
		}
		h.controller.SetPage(page)
	}

	writeJSON(w, http.StatusOK, h.controller.View())
}

// Featured handles GET /api/products/featured, refreshing the catalogue
// the same way the main listing does.
func (h *StorefrontHandler) Featured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	if err := h.controller.LoadProducts(r.Context()); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.controller.Featured())
}

type cartResponse struct {
	Items    []model.CartItem `json:"items"`
	Count    int              `json:"count"`
	Subtotal string           `json:"subtotal"`
}

func (h *StorefrontHandler) cartState() cartResponse {
	return cartResponse{
		Items:    h.controller.CartItems(),
		Count:    h.controller.CartCount(),
		Subtotal: h.controller.CartSubtotal().StringFixed(2),
	}
}

// Cart handles GET /api/cart and POST /api/cart/items.
func (h *StorefrontHandler) Cart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, h.cartState())
}

// AddCartItem handles POST /api/cart/items.
func (h *StorefrontHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.controller.AddToCart(r.Context(), req.ProductID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartState())
}

// CartItem handles PATCH and DELETE on /api/cart/items/{id}.
func (h *StorefrontHandler) CartItem(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, model.NewValidationError("ID de produto inválido"), h.logger)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req struct {
			Delta int `json:"delta"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err, h.logger)
			return
		}
		if err := h.controller.AdjustQuantity(r.Context(), productID, req.Delta); err != nil {
			writeError(w, err, h.logger)
			return
		}
	case http.MethodDelete:
		if err := h.controller.RemoveFromCart(r.Context(), productID); err != nil {
			writeError(w, err, h.logger)
			return
		}
	default:
		methodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, h.cartState())
}

// Checkout handles POST /api/checkout.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var customer model.Customer
	if err := decodeJSON(r, &customer); err != nil {
		writeError(w, err, h.logger)
		return
	}

	result, err := h.controller.Checkout(r.Context(), customer)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
