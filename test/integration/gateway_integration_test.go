package integration

import (
	"context"
	"testing"

	"github.com/masknetdesign/mercado-online/internal/gateway"
	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresGateway_ProductCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	gw := gateway.NewPostgres(db.Pool, &stubImageStore{}, zerolog.Nop())
	ctx := context.Background()

	// Create
	created, err := gw.AddProduct(ctx, model.ProductInput{
		Name:        "Banana Prata",
		Description: "Banana prata fresca",
		Price:       decimal.RequireFromString("4.99"),
		Category:    model.CategoryFrutas,
		ImageURL:    "https://cdn.test/banana.jpg",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("4.99")))
	assert.False(t, created.CreatedAt.IsZero())

	second, err := gw.AddProduct(ctx, model.ProductInput{
		Name:     "Coca-Cola 2L",
		Price:    decimal.RequireFromString("8.99"),
		Category: model.CategoryBebidas,
	})
	require.NoError(t, err)

	// Read: newest first
	products, err := gw.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, created.ID, products[1].ID)

	// Update
	updated, err := gw.UpdateProduct(ctx, created.ID, model.ProductInput{
		Name:        "Banana Nanica",
		Description: created.Description,
		Price:       decimal.RequireFromString("5.49"),
		Category:    model.CategoryFrutas,
		ImageURL:    created.ImageURL,
	})
	require.NoError(t, err)
	assert.Equal(t, "Banana Nanica", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("5.49")))

	// Delete
	removed, err := gw.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	products, err = gw.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestPostgresGateway_MissingProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	gw := gateway.NewPostgres(db.Pool, &stubImageStore{}, zerolog.Nop())
	ctx := context.Background()

	_, err := gw.UpdateProduct(ctx, 12345, model.ProductInput{
		Name:     "Fantasma",
		Price:    decimal.New(1, 0),
		Category: model.CategoryOutros,
	})
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	_, err = gw.DeleteProduct(ctx, 12345)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestPostgresGateway_UploadImage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	images := &stubImageStore{}
	gw := gateway.NewPostgres(db.Pool, images, zerolog.Nop())
	ctx := context.Background()

	url, err := gw.UploadImage(ctx, model.ImageUpload{
		FileName:    "banana.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
		Content:     []byte("jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/produtos/banana.jpg", url)
	assert.Len(t, images.uploads, 1)

	// Prechecks reject before the store is touched.
	_, err = gw.UploadImage(ctx, model.ImageUpload{
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        10,
	})
	assert.ErrorIs(t, err, model.ErrNotImage)
	assert.Len(t, images.uploads, 1)
}

func TestPostgresGateway_Auth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	gw := gateway.NewPostgres(db.Pool, &stubImageStore{}, zerolog.Nop())
	ctx := context.Background()

	hash, err := gateway.HashPassword("s3cret")
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, uuid.NewString(), "admin@mercado.com", hash)
	require.NoError(t, err)

	// Wrong password
	_, err = gw.SignIn(ctx, "admin@mercado.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)

	// Unknown e-mail
	_, err = gw.SignIn(ctx, "nobody@mercado.com", "s3cret")
	assert.ErrorIs(t, err, model.ErrInvalidCredential)

	// Nobody signed in yet
	current, err := gw.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// Successful sign-in establishes the session
	user, err := gw.SignIn(ctx, "admin@mercado.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin@mercado.com", user.Email)

	current, err = gw.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)

	// Sign-out clears it
	require.NoError(t, gw.SignOut(ctx))
	current, err = gw.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}
