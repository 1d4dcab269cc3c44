package router

import (
	"net/http"
	"strings"

	"github.com/masknetdesign/mercado-online/internal/admin"
	"github.com/masknetdesign/mercado-online/internal/handler"
	"github.com/masknetdesign/mercado-online/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	storefrontHandler *handler.StorefrontHandler,
	adminHandler *handler.AdminHandler,
	sessions *admin.Sessions,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Storefront catalogue
	mux.HandleFunc("/api/products", storefrontHandler.Products)
	mux.HandleFunc("/api/products/featured", storefrontHandler.Featured)

	// Cart routes
	mux.HandleFunc("/api/cart", storefrontHandler.Cart)
	mux.HandleFunc("/api/cart/items", storefrontHandler.AddCartItem)
	mux.HandleFunc("/api/cart/items/", storefrontHandler.CartItem)

	mux.HandleFunc("/api/checkout", storefrontHandler.Checkout)

	// Admin session
	mux.HandleFunc("/api/admin/login", adminHandler.Login)
	mux.HandleFunc("/api/admin/logout", adminHandler.Logout)

	// Admin product routes; the delete flow has dedicated endpoints so a
	// request/confirm pair never collides with the by-id routes.
	mux.HandleFunc("/api/admin/products", adminHandler.Products)
	mux.HandleFunc("/api/admin/products/delete-confirm", adminHandler.ConfirmDelete)
	mux.HandleFunc("/api/admin/products/delete-cancel", adminHandler.CancelDelete)
	mux.HandleFunc("/api/admin/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/products/" {
			adminHandler.Products(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/delete-confirm") || strings.HasSuffix(r.URL.Path, "/delete-cancel") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		adminHandler.Product(w, r)
	})

	mux.HandleFunc("/api/admin/uploads", adminHandler.Upload)
	mux.HandleFunc("/api/admin/settings/whatsapp", adminHandler.WhatsAppSetting)
	mux.HandleFunc("/api/admin/stats", adminHandler.Stats)
	mux.HandleFunc("/api/admin/export", adminHandler.Export)

	// Apply middleware in order: Recovery -> Logging -> CORS -> SessionAuth
	var h http.Handler = mux
	h = middleware.SessionAuth(sessions, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
