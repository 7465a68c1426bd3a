package order

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository stores orders in the `orders` table. Item snapshots, the
// shipping address, the vendor contact and the payment proof are jsonb
// columns; the money fields are flat integers so reports can aggregate them.
type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `order_id, order_number, customer_id, vendor_id, items, subtotal, shipping_cost, total, commission_rate, commission_amount, vendor_net_amount, status, shipping_method, shipping_address, customer_name, customer_phone, customer_email, vendor_contact, cancel_reason, payment_proof, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var ord Order
	var itemsJSON, addressJSON, contactJSON, proofJSON []byte
	if err := row.Scan(&ord.ID, &ord.OrderNumber, &ord.CustomerID, &ord.VendorID, &itemsJSON,
		&ord.Subtotal, &ord.ShippingCost, &ord.Total, &ord.CommissionRate, &ord.CommissionAmount,
		&ord.VendorNetAmount, &ord.Status, &ord.ShippingMethod, &addressJSON,
		&ord.CustomerName, &ord.CustomerPhone, &ord.CustomerEmail, &contactJSON,
		&ord.CancelReason, &proofJSON, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		return Order{}, err
	}
	json.Unmarshal(itemsJSON, &ord.Items)
	json.Unmarshal(addressJSON, &ord.ShippingAddress)
	json.Unmarshal(contactJSON, &ord.VendorContact)
	if len(proofJSON) > 0 && string(proofJSON) != "null" {
		var proof PaymentProof
		if err := json.Unmarshal(proofJSON, &proof); err == nil {
			ord.PaymentProof = &proof
		}
	}
	return ord, nil
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}
	addressJSON, err := json.Marshal(ord.ShippingAddress)
	if err != nil {
		return Order{}, err
	}
	contactJSON, err := json.Marshal(ord.VendorContact)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders (order_number, customer_id, vendor_id, items, subtotal, shipping_cost, total, commission_rate, commission_amount, vendor_net_amount, status, shipping_method, shipping_address, customer_name, customer_phone, customer_email, vendor_contact, cancel_reason, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING order_id`,
		ord.OrderNumber, ord.CustomerID, ord.VendorID, itemsJSON,
		ord.Subtotal, ord.ShippingCost, ord.Total, ord.CommissionRate, ord.CommissionAmount,
		ord.VendorNetAmount, ord.Status, ord.ShippingMethod, addressJSON,
		ord.CustomerName, ord.CustomerPhone, ord.CustomerEmail, contactJSON,
		ord.CancelReason, ord.CreatedAt, ord.UpdatedAt).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) listWhere(where string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders `+where+` ORDER BY order_id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, nil
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Order, error) {
	return r.listWhere(`WHERE customer_id = $1`, customerID)
}

func (r *PostgresRepository) ListByVendor(vendorID int) ([]Order, error) {
	return r.listWhere(`WHERE vendor_id = $1`, vendorID)
}

func (r *PostgresRepository) List() ([]Order, error) {
	return r.listWhere(``)
}

func (r *PostgresRepository) UpdateStatus(id int, status Status, reason string, updatedAt string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = $2, cancel_reason = CASE WHEN $3 <> '' THEN $3 ELSE cancel_reason END, updated_at = $4 WHERE order_id = $1`,
		id, status, reason, updatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPaymentProof(id int, proof PaymentProof, status Status, updatedAt string) error {
	proofJSON, err := json.Marshal(proof)
	if err != nil {
		return err
	}

	res, err := r.db.Exec(`UPDATE orders SET payment_proof = $2, status = $3, updated_at = $4 WHERE order_id = $1`,
		id, proofJSON, status, updatedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
