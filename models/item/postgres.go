package item

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/grocerly/grocerly/connections"
)

const itemColumns = "id, user_id, name, category, price, quantity, status, created_at, updated_at"

// Postgres is the PostgreSQL store for items
type Postgres struct{}

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.Name,
		&it.Category,
		&it.Price,
		&it.Quantity,
		&it.Status,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListByOwner returns all items for an owner ordered by descending creation time
func (p *Postgres) ListByOwner(ownerID int) ([]*Item, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// Create inserts a new active item for an owner
func (p *Postgres) Create(ownerID int, f Fields) (*Item, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanItem(pool.QueryRow(ctx, `
		INSERT INTO items (user_id, name, category, price, quantity, status)
		VALUES ($1, $2, $3, $4, $5, 'active')
		RETURNING `+itemColumns+`
	`, ownerID, f.Name, f.Category, f.Price, f.Quantity))
}

// Update updates an item located by id and owner in a single statement
func (p *Postgres) Update(ownerID, id int, f Fields) (*Item, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	it, err := scanItem(pool.QueryRow(ctx, `
		UPDATE items
		SET name = $1, category = $2, price = $3, quantity = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING `+itemColumns+`
	`, f.Name, f.Category, f.Price, f.Quantity, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return it, nil
}

// Delete removes an item located by id and owner
func (p *Postgres) Delete(ownerID, id int) error {
	ctx := context.Background()
	pool := connections.Postgres()

	ct, err := pool.Exec(ctx, `
		DELETE FROM items
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Toggle flips an item's status between active and completed in one statement
func (p *Postgres) Toggle(ownerID, id int) (*Item, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	it, err := scanItem(pool.QueryRow(ctx, `
		UPDATE items
		SET status = CASE status WHEN 'active' THEN 'completed' ELSE 'active' END,
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+itemColumns+`
	`, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return it, nil
}

// DeleteCompleted removes all completed items for an owner in one statement
func (p *Postgres) DeleteCompleted(ownerID int) (int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	ct, err := pool.Exec(ctx, `
		DELETE FROM items
		WHERE user_id = $1 AND status = 'completed'
	`, ownerID)
	if err != nil {
		return 0, err
	}

	return int(ct.RowsAffected()), nil
}

// DeleteAll removes every item for an owner in one statement
func (p *Postgres) DeleteAll(ownerID int) (int, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	ct, err := pool.Exec(ctx, `
		DELETE FROM items
		WHERE user_id = $1
	`, ownerID)
	if err != nil {
		return 0, err
	}

	return int(ct.RowsAffected()), nil
}
