package shipping

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const zoneColumns = `zone_id, vendor_id, name, type, commune, region, station, street, cost, estimated_days, enabled, pickup_allowed, instructions`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanZone(row interface{ Scan(...any) error }) (Zone, error) {
	var z Zone
	err := row.Scan(&z.ID, &z.VendorID, &z.Name, &z.Type, &z.Commune, &z.Region, &z.Station, &z.Street,
		&z.Cost, &z.EstimatedDays, &z.Enabled, &z.PickupAllowed, &z.Instructions)
	return z, err
}

func (r *PostgresRepository) ListByVendor(vendorID int) []Zone {
	rows, err := r.db.Query(`SELECT `+zoneColumns+` FROM shipping_zones WHERE vendor_id = $1 ORDER BY zone_id`, vendorID)
	if err != nil {
		return []Zone{}
	}
	defer rows.Close()

	out := make([]Zone, 0)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			continue
		}
		out = append(out, z)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Zone, error) {
	z, err := scanZone(r.db.QueryRow(`SELECT `+zoneColumns+` FROM shipping_zones WHERE zone_id = $1`, id))
	if err == sql.ErrNoRows {
		return Zone{}, ErrNotFound
	}
	return z, err
}

func (r *PostgresRepository) Create(z Zone) (Zone, error) {
	err := r.db.QueryRow(`INSERT INTO shipping_zones (vendor_id, name, type, commune, region, station, street, cost, estimated_days, enabled, pickup_allowed, instructions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING zone_id`,
		z.VendorID, z.Name, z.Type, z.Commune, z.Region, z.Station, z.Street,
		z.Cost, z.EstimatedDays, z.Enabled, z.PickupAllowed, z.Instructions).Scan(&z.ID)
	if err != nil {
		return Zone{}, err
	}
	return z, nil
}

func (r *PostgresRepository) Update(id int, z Zone) (Zone, error) {
	res, err := r.db.Exec(`UPDATE shipping_zones
		SET name=$2, type=$3, commune=$4, region=$5, station=$6, street=$7, cost=$8, estimated_days=$9, enabled=$10, pickup_allowed=$11, instructions=$12
		WHERE zone_id=$1`,
		id, z.Name, z.Type, z.Commune, z.Region, z.Station, z.Street,
		z.Cost, z.EstimatedDays, z.Enabled, z.PickupAllowed, z.Instructions)
	if err != nil {
		return Zone{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Zone{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM shipping_zones WHERE zone_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
