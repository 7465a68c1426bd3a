package cart

import (
	"database/sql"
	"time"
)

// PostgresRepository keeps one row per cart in `carts` and one row per line
// in `cart_items`. Line order is insertion order (serial item_id).
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUser(userID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(`SELECT cart_id, user_id FROM carts WHERE user_id = $1`, userID).Scan(&c.ID, &c.UserID)
	if err == sql.ErrNoRows {
		now := time.Now().UTC().Format(time.RFC3339)
		err = r.db.QueryRow(`INSERT INTO carts (user_id, created_at, updated_at) VALUES ($1,$2,$2) RETURNING cart_id, user_id`,
			userID, now).Scan(&c.ID, &c.UserID)
	}
	if err != nil {
		return Cart{}, err
	}

	rows, err := r.db.Query(`SELECT item_id, product_id, vendor_id, quantity, unit_price, size, color, added_at
		FROM cart_items WHERE cart_id = $1 ORDER BY item_id`, c.ID)
	if err != nil {
		return Cart{}, err
	}
	defer rows.Close()

	c.Items = make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.VendorID, &it.Quantity, &it.UnitPrice, &it.Size, &it.Color, &it.AddedAt); err != nil {
			return Cart{}, err
		}
		c.Items = append(c.Items, it)
	}
	return c, nil
}

func (r *PostgresRepository) InsertItem(cartID int, it Item) (Item, error) {
	err := r.db.QueryRow(`INSERT INTO cart_items (cart_id, product_id, vendor_id, quantity, unit_price, size, color, added_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING item_id`,
		cartID, it.ProductID, it.VendorID, it.Quantity, it.UnitPrice, it.Size, it.Color, it.AddedAt).Scan(&it.ID)
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepository) UpdateItemQuantity(cartID, itemID, quantity int) error {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND item_id = $2`, cartID, itemID, quantity)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) RemoveItem(cartID, itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1 AND item_id = $2`, cartID, itemID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear removes the lines but keeps the cart row.
func (r *PostgresRepository) Clear(cartID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
