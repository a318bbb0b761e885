package item

import "testing"

func seed(t *testing.T, svc *Items, ownerID int, names ...string) []*Item {
	t.Helper()
	var created []*Item
	for _, name := range names {
		it, err := svc.Create(ownerID, Fields{Name: name, Category: "Other", Price: 1, Quantity: 1})
		if err != nil {
			t.Fatalf("Create(%d, %q) error = %v", ownerID, name, err)
		}
		created = append(created, it)
	}
	return created
}

func TestItems_Create(t *testing.T) {
	svc := NewItems(NewMock())

	it, err := svc.Create(1, Fields{Name: "Milk", Category: "Dairy", Price: 3.5, Quantity: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if it.ID == 0 {
		t.Error("Create() did not assign an id")
	}
	if it.Status != StatusActive {
		t.Errorf("Create() status = %q, want %q", it.Status, StatusActive)
	}
	if it.UserID != 1 {
		t.Errorf("Create() user id = %d, want 1", it.UserID)
	}
	if it.CreatedAt.IsZero() || it.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}
}

func TestItems_CreateValidates(t *testing.T) {
	svc := NewItems(NewMock())

	if _, err := svc.Create(1, Fields{Name: "Milk", Category: "Dairy", Price: 0, Quantity: 1}); err != ErrInvalidPrice {
		t.Errorf("Create() with zero price error = %v, want %v", err, ErrInvalidPrice)
	}
	if _, err := svc.Create(1, Fields{Name: "Milk", Category: "Dairy", Price: 1, Quantity: 0}); err != ErrInvalidQuantity {
		t.Errorf("Create() with zero quantity error = %v, want %v", err, ErrInvalidQuantity)
	}

	// nothing may be persisted by a failed create
	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() after failed creates = %d items, want 0", len(items))
	}
}

func TestItems_ListScopedToOwner(t *testing.T) {
	svc := NewItems(NewMock())
	seed(t, svc, 1, "Milk", "Bread")
	seed(t, svc, 2, "Eggs")

	items, err := svc.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("List(2) = %d items, want 1", len(items))
	}
	for _, it := range items {
		if it.UserID != 2 {
			t.Errorf("List(2) returned item owned by %d", it.UserID)
		}
	}
}

func TestItems_ListNewestFirst(t *testing.T) {
	svc := NewItems(NewMock())
	seed(t, svc, 1, "First", "Second", "Third")

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("List() = %d items, want 3", len(items))
	}
	want := []string{"Third", "Second", "First"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("List()[%d] = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestItems_ForeignItemIndistinguishable(t *testing.T) {
	svc := NewItems(NewMock())
	owned := seed(t, svc, 1, "Milk")[0]
	fields := Fields{Name: "Cream", Category: "Dairy", Price: 2, Quantity: 1}

	// every mutation by a non-owner must look exactly like a missing id
	tests := []struct {
		name string
		call func(ownerID, id int) error
	}{
		{"update", func(ownerID, id int) error { _, err := svc.Update(ownerID, id, fields); return err }},
		{"toggle", func(ownerID, id int) error { _, err := svc.Toggle(ownerID, id); return err }},
		{"delete", func(ownerID, id int) error { return svc.Delete(ownerID, id) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foreignErr := tt.call(2, owned.ID)
			missingErr := tt.call(2, 9999)
			if foreignErr != ErrItemNotFound {
				t.Errorf("%s on foreign item error = %v, want %v", tt.name, foreignErr, ErrItemNotFound)
			}
			if foreignErr != missingErr {
				t.Errorf("%s foreign error %v differs from missing-id error %v", tt.name, foreignErr, missingErr)
			}
		})
	}

	// the owner still sees the untouched item
	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" || items[0].Status != StatusActive {
		t.Errorf("owner's item was modified by non-owner calls: %+v", items[0])
	}
}

func TestItems_ToggleInvolution(t *testing.T) {
	svc := NewItems(NewMock())
	it := seed(t, svc, 1, "Milk")[0]

	toggled, err := svc.Toggle(1, it.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if toggled.Status != StatusCompleted {
		t.Errorf("Toggle() status = %q, want %q", toggled.Status, StatusCompleted)
	}

	back, err := svc.Toggle(1, it.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if back.Status != StatusActive {
		t.Errorf("Toggle() twice status = %q, want %q", back.Status, StatusActive)
	}
}

func TestItems_ClearCompleted(t *testing.T) {
	svc := NewItems(NewMock())
	mine := seed(t, svc, 1, "Milk", "Bread", "Eggs")
	other := seed(t, svc, 2, "Butter")[0]

	if _, err := svc.Toggle(1, mine[0].ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Toggle(1, mine[1].ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Toggle(2, other.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	count, err := svc.ClearCompleted(1)
	if err != nil {
		t.Fatalf("ClearCompleted() error = %v", err)
	}
	if count != 2 {
		t.Errorf("ClearCompleted() = %d, want 2", count)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("List(1) after clear = %d items, want 1", len(items))
	}
	if items[0].Status != StatusActive {
		t.Errorf("surviving item status = %q, want %q", items[0].Status, StatusActive)
	}

	// the other owner's completed item is untouched
	otherItems, err := svc.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(otherItems) != 1 {
		t.Errorf("List(2) after clear = %d items, want 1", len(otherItems))
	}

	// clearing again removes nothing and is not an error
	count, err = svc.ClearCompleted(1)
	if err != nil {
		t.Fatalf("ClearCompleted() second call error = %v", err)
	}
	if count != 0 {
		t.Errorf("ClearCompleted() second call = %d, want 0", count)
	}
}

func TestItems_ClearAll(t *testing.T) {
	svc := NewItems(NewMock())
	seed(t, svc, 1, "Milk", "Bread")
	seed(t, svc, 2, "Butter")

	count, err := svc.ClearAll(1)
	if err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if count != 2 {
		t.Errorf("ClearAll() = %d, want 2", count)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List(1) after ClearAll = %d items, want 0", len(items))
	}

	otherItems, err := svc.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(otherItems) != 1 {
		t.Errorf("List(2) after ClearAll(1) = %d items, want 1", len(otherItems))
	}
}

func TestItems_Lifecycle(t *testing.T) {
	svc := NewItems(NewMock())

	it, err := svc.Create(1, Fields{Name: "Milk", Category: "Dairy", Price: 3.5, Quantity: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if it.Status != StatusActive {
		t.Fatalf("Create() status = %q, want %q", it.Status, StatusActive)
	}

	updated, err := svc.Update(1, it.ID, Fields{Name: "Whole Milk", Category: "Dairy", Price: 4.25, Quantity: 1})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Whole Milk" || updated.Price != 4.25 || updated.Quantity != 1 {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.UserID != 1 {
		t.Errorf("Update() changed owner to %d", updated.UserID)
	}

	if err := svc.Delete(1, it.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	items, err := svc.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() after delete = %d items, want 0", len(items))
	}
}
