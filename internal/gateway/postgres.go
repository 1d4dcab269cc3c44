package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// postgresGateway is the production backend: product rows in Postgres,
// images in an ImageStore, operator credentials bcrypt-hashed in the
// admin_users table. The session is process-local, mirroring the ambient
// single-operator session of the hosted service it replaces.
type postgresGateway struct {
	pool   *pgxpool.Pool
	images ImageStore
	logger zerolog.Logger

	mu      sync.Mutex
	current *model.User
}

// NewPostgres creates the Postgres-backed gateway.
func NewPostgres(pool *pgxpool.Pool, images ImageStore, logger zerolog.Logger) Gateway {
	return &postgresGateway{
		pool:   pool,
		images: images,
		logger: logger.With().Str("gateway", "postgres").Logger(),
	}
}

const productColumns = "id, nome, descricao, preco::text, categoria, url_imagem, criado_em"

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var price string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Category, &p.ImageURL, &p.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}
	p.Price = parsed
	return &p, nil
}

// GetProducts returns the full catalogue, newest first.
func (g *postgresGateway) GetProducts(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM produtos
		ORDER BY criado_em DESC, id DESC
	`, productColumns)

	rows, err := g.pool.Query(ctx, query)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			g.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		g.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// AddProduct creates a product and returns it with its assigned id.
func (g *postgresGateway) AddProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO produtos (nome, descricao, preco, categoria, url_imagem)
		VALUES ($1, $2, $3::numeric, $4, $5)
		RETURNING %s
	`, productColumns)

	row := g.pool.QueryRow(ctx, query,
		input.Name, input.Description, input.Price.StringFixed(2), input.Category, input.ImageURL)

	product, err := scanProduct(row)
	if err != nil {
		g.logger.Error().Err(err).Str("name", input.Name).Msg("failed to insert product")
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	g.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// UpdateProduct overwrites the writable fields of an existing product.
func (g *postgresGateway) UpdateProduct(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error) {
	query := fmt.Sprintf(`
		UPDATE produtos
		SET nome = $2, descricao = $3, preco = $4::numeric, categoria = $5, url_imagem = $6
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	row := g.pool.QueryRow(ctx, query,
		id, input.Name, input.Description, input.Price.StringFixed(2), input.Category, input.ImageURL)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.logger.Debug().Int64("product_id", id).Msg("product not found for update")
			return nil, model.ErrProductNotFound
		}
		g.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	g.logger.Info().Int64("product_id", id).Msg("product updated")
	return product, nil
}

// DeleteProduct removes a product and returns the removed record.
func (g *postgresGateway) DeleteProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`
		DELETE FROM produtos
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	product, err := scanProduct(g.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.logger.Debug().Int64("product_id", id).Msg("product not found for delete")
			return nil, model.ErrProductNotFound
		}
		g.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	g.logger.Info().Int64("product_id", id).Msg("product deleted")
	return product, nil
}

// UploadImage prechecks the file, then hands it to the image store.
func (g *postgresGateway) UploadImage(ctx context.Context, upload model.ImageUpload) (string, error) {
	if err := PrecheckImage(upload); err != nil {
		return "", err
	}
	return g.images.Store(ctx, upload)
}

// SignIn authenticates against the admin_users table.
func (g *postgresGateway) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, model.NewValidationError("Email e senha são obrigatórios")
	}

	query := `
		SELECT id, email, password_hash
		FROM admin_users
		WHERE email = $1
	`

	var user model.User
	var hash string
	err := g.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.logger.Warn().Str("email", email).Msg("sign-in for unknown email")
			return nil, model.ErrInvalidCredential
		}
		g.logger.Error().Err(err).Msg("failed to query admin user")
		return nil, fmt.Errorf("failed to query admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		g.logger.Warn().Str("email", email).Msg("sign-in with wrong password")
		return nil, model.ErrInvalidCredential
	}

	g.mu.Lock()
	g.current = &user
	g.mu.Unlock()

	g.logger.Info().Str("email", email).Msg("operator signed in")
	return &user, nil
}

// SignOut ends the current session.
func (g *postgresGateway) SignOut(_ context.Context) error {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()
	return nil
}

// CurrentUser returns the signed-in operator, or nil when nobody is.
func (g *postgresGateway) CurrentUser(_ context.Context) (*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return nil, nil
	}
	user := *g.current
	return &user, nil
}

// HashPassword produces the bcrypt hash stored in admin_users, used by the
// operator provisioning script.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
