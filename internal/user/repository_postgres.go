package user

import (
	"database/sql"
	"encoding/json"
)

// PostgresRepository stores users in the `users` table. The vendor payment
// methods are a jsonb column so the list stays a single row attribute.
type PostgresRepository struct {
	db *sql.DB
}

const userColumns = `user_id, email, password, first_name, last_name, phone, role, store_name, commission_rate, payment_methods, created_at, updated_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var methodsJSON []byte
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone,
		&u.Role, &u.StoreName, &u.CommissionRate, &methodsJSON, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	if len(methodsJSON) > 0 {
		json.Unmarshal(methodsJSON, &u.PaymentMethods)
	}
	return u, nil
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY user_id`)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(u User) (User, error) {
	methodsJSON, err := json.Marshal(u.PaymentMethods)
	if err != nil {
		return User{}, err
	}

	err = r.db.QueryRow(`INSERT INTO users (email, password, first_name, last_name, phone, role, store_name, commission_rate, payment_methods, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING user_id`,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Role,
		u.StoreName, u.CommissionRate, methodsJSON, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	methodsJSON, err := json.Marshal(u.PaymentMethods)
	if err != nil {
		return User{}, err
	}

	res, err := r.db.Exec(`UPDATE users
		SET email=$2, first_name=$3, last_name=$4, phone=$5, role=$6, store_name=$7, commission_rate=$8, payment_methods=$9, updated_at=$10
		WHERE user_id=$1`,
		id, u.Email, u.FirstName, u.LastName, u.Phone, u.Role,
		u.StoreName, u.CommissionRate, methodsJSON, u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}

	// password updates go through a dedicated statement so a blank field
	// in the payload never wipes the stored hash
	if u.Password != "" {
		if _, err := r.db.Exec(`UPDATE users SET password=$2 WHERE user_id=$1`, id, u.Password); err != nil {
			return User{}, err
		}
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
