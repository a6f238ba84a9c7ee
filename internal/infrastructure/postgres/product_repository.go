package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_email, owner_name, category, name, description, condition, location,
	phone, image_url, original_price, resale_price, years_of_use, is_verified, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.OwnerEmail, p.OwnerName, p.Category, p.Name,
		nullIfEmpty(p.Description), nullIfEmpty(p.Condition), nullIfEmpty(p.Location),
		nullIfEmpty(p.Phone), nullIfEmpty(p.ImageURL),
		p.OriginalPrice, p.ResalePrice, p.YearsOfUse, p.IsVerified, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List aplica los filtros presentes, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR lower(owner_email) = lower($2))
		  AND (NOT $3 OR is_verified)
		ORDER BY created_at DESC`,
		f.Category, f.OwnerEmail, f.VerifiedOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// VerifyByOwner propaga la verificación del vendedor a sus productos.
func (r *ProductRepo) VerifyByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET is_verified = TRUE, updated_at = now()
		WHERE lower(owner_email) = lower($1) AND NOT is_verified`, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("verify products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina por id.
func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var description, condition, location, phone, image *string
	err := row.Scan(
		&p.ID, &p.OwnerEmail, &p.OwnerName, &p.Category, &p.Name,
		&description, &condition, &location, &phone, &image,
		&p.OriginalPrice, &p.ResalePrice, &p.YearsOfUse, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = fromNull(description)
	p.Condition = fromNull(condition)
	p.Location = fromNull(location)
	p.Phone = fromNull(phone)
	p.ImageURL = fromNull(image)
	return &p, nil
}
