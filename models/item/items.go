package item

// store is the persistence interface for items. Every method is scoped to an
// owner: lookups carry the owner in the same predicate that locates the row,
// so a foreign item and a missing item are the same ErrItemNotFound outcome.
type store interface {
	ListByOwner(ownerID int) ([]*Item, error)
	Create(ownerID int, f Fields) (*Item, error)
	Update(ownerID, id int, f Fields) (*Item, error)
	Delete(ownerID, id int) error
	Toggle(ownerID, id int) (*Item, error)
	DeleteCompleted(ownerID int) (int, error)
	DeleteAll(ownerID int) (int, error)
}

// Items is the ownership-scoped item service. All operations take the
// authenticated owner's account id explicitly; the service never reads
// ambient request state.
type Items struct {
	store store
}

// NewItems creates an item service backed by the given store
func NewItems(store store) *Items {
	return &Items{store: store}
}

// List returns all items owned by ownerID, newest first
func (i *Items) List(ownerID int) ([]*Item, error) {
	return i.store.ListByOwner(ownerID)
}

// Create validates the fields and persists a new active item for ownerID
func (i *Items) Create(ownerID int, f Fields) (*Item, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return i.store.Create(ownerID, f)
}

// Update validates the fields and updates the item owned by ownerID.
// Returns ErrItemNotFound when the item is absent or owned by someone else.
func (i *Items) Update(ownerID, id int, f Fields) (*Item, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return i.store.Update(ownerID, id, f)
}

// Delete removes the item owned by ownerID
func (i *Items) Delete(ownerID, id int) error {
	return i.store.Delete(ownerID, id)
}

// Toggle flips the item between active and completed
func (i *Items) Toggle(ownerID, id int) (*Item, error) {
	return i.store.Toggle(ownerID, id)
}

// ClearCompleted deletes all completed items owned by ownerID and
// returns the number removed. Zero is a valid outcome.
func (i *Items) ClearCompleted(ownerID int) (int, error) {
	return i.store.DeleteCompleted(ownerID)
}

// ClearAll deletes every item owned by ownerID and returns the number removed
func (i *Items) ClearAll(ownerID int) (int, error) {
	return i.store.DeleteAll(ownerID)
}
