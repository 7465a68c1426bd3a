package product

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// PostgresRepository stores products in the `products` table. Images are a
// text[] column and variants a jsonb column.
type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `product_id, vendor_id, product_name, product_desc, product_price, stock, active, images, variants, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var variantsJSON []byte
	if err := row.Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Active, pq.Array(&p.Images), &variantsJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	if len(variantsJSON) > 0 {
		json.Unmarshal(variantsJSON, &p.Variants)
	}
	return p, nil
}

func (r *PostgresRepository) List(activeOnly bool) []Product {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id`
	if activeOnly {
		query = `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY product_id`
	}

	rows, err := r.db.Query(query)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) ListByVendor(vendorID int) []Product {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products WHERE vendor_id = $1 ORDER BY product_id`, vendorID)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE product_id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	variantsJSON, err := json.Marshal(p.Variants)
	if err != nil {
		return Product{}, err
	}

	err = r.db.QueryRow(`INSERT INTO products (vendor_id, product_name, product_desc, product_price, stock, active, images, variants, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING product_id`,
		p.VendorID, p.Name, p.Description, p.Price, p.Stock, p.Active,
		pq.Array(p.Images), variantsJSON, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	variantsJSON, err := json.Marshal(p.Variants)
	if err != nil {
		return Product{}, err
	}

	res, err := r.db.Exec(`UPDATE products
		SET product_name=$2, product_desc=$3, product_price=$4, stock=$5, active=$6, images=$7, variants=$8, updated_at=$9
		WHERE product_id=$1`,
		id, p.Name, p.Description, p.Price, p.Stock, p.Active,
		pq.Array(p.Images), variantsJSON, p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock runs the guard inside the UPDATE itself. When zero rows are
// touched the product either does not exist or the stock floor would be
// crossed; a follow-up read tells the two cases apart.
func (r *PostgresRepository) DecrementStock(id int, qty int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = stock - $2 WHERE product_id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	var available int
	err = r.db.QueryRow(`SELECT stock FROM products WHERE product_id = $1`, id).Scan(&available)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return &StockError{Available: available}
}
