package gateway

import (
	"context"

	"github.com/masknetdesign/mercado-online/internal/model"
)

// Gateway is the storefront's view of the hosted backend: product rows,
// image storage and operator authentication. Exactly one implementation is
// chosen at startup; there is no runtime switching.
//
// Every method may fail. A non-nil error means the returned data must be
// treated as absent, and callers leave local state unchanged.
type Gateway interface {
	// GetProducts returns the full catalogue, newest first.
	GetProducts(ctx context.Context) ([]model.Product, error)

	// AddProduct creates a product and returns it with its assigned id.
	AddProduct(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// UpdateProduct overwrites the writable fields of an existing product.
	UpdateProduct(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error)

	// DeleteProduct removes a product and returns the removed record.
	DeleteProduct(ctx context.Context, id int64) (*model.Product, error)

	// UploadImage stores an image and returns its public URL. Files that
	// are not images or exceed MaxImageSize are rejected before any I/O.
	UploadImage(ctx context.Context, upload model.ImageUpload) (string, error)

	// SignIn authenticates the operator and establishes the session.
	SignIn(ctx context.Context, email, password string) (*model.User, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// CurrentUser returns the signed-in operator, or nil when nobody is.
	CurrentUser(ctx context.Context) (*model.User, error)
}
