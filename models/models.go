package models

import (
	"github.com/grocerly/grocerly/models/item"
)

// Items returns the item service backed by PostgreSQL.
// Declared as a variable so tests can swap in a mock store.
var Items = func() *item.Items {
	return item.NewItems(new(item.Postgres))
}
