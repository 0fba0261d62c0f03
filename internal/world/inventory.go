package world

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StackEntry is a stackable item line in the inventory.
type StackEntry struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Entry is one inventory slot: exactly one of Equipment or Stack is set.
type Entry struct {
	Equipment *Equipment
	Stack     *StackEntry
}

// IsEquipment reports whether the entry holds a unique equipment instance.
func (n *Entry) IsEquipment() bool { return n.Equipment != nil }

func (n *Entry) MarshalJSON() ([]byte, error) {
	if n.Equipment != nil {
		return json.Marshal(n.Equipment)
	}
	if n.Stack != nil {
		return json.Marshal(n.Stack)
	}
	return nil, fmt.Errorf("inventory entry has no payload")
}

// UnmarshalJSON decides the entry kind by presence of the equipment_id key;
// anything else is treated as a stackable line.
func (n *Entry) UnmarshalJSON(b []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return fmt.Errorf("inventory entry: %w", err)
	}
	if _, ok := probe["equipment_id"]; ok {
		eq := &Equipment{}
		if err := json.Unmarshal(b, eq); err != nil {
			return fmt.Errorf("inventory equipment: %w", err)
		}
		if eq.ExtraStats == nil {
			eq.ExtraStats = map[string]ExtraStat{}
		}
		n.Equipment = eq
		n.Stack = nil
		return nil
	}
	st := &StackEntry{}
	if err := json.Unmarshal(b, st); err != nil {
		return fmt.Errorf("inventory stack: %w", err)
	}
	n.Stack = st
	n.Equipment = nil
	return nil
}

// Inventory maps entry key to entry. Stackable items use their item id as
// key; equipment uses the instance id.
type Inventory map[string]*Entry

// AddItem adds quantity of a stackable item, creating the line if absent.
func (inv Inventory) AddItem(itemID, name string, qty int) {
	if qty <= 0 {
		return
	}
	if entry, ok := inv[itemID]; ok && entry.Stack != nil {
		entry.Stack.Quantity += qty
		return
	}
	inv[itemID] = &Entry{Stack: &StackEntry{ItemID: itemID, Name: name, Quantity: qty}}
}

// ItemCount returns the held quantity of a stackable item.
func (inv Inventory) ItemCount(itemID string) int {
	if entry, ok := inv[itemID]; ok && entry.Stack != nil {
		return entry.Stack.Quantity
	}
	return 0
}

// RemoveItem removes quantity of a stackable item; the line disappears when
// it reaches zero. Returns false without change when the quantity is short.
func (inv Inventory) RemoveItem(itemID string, qty int) bool {
	entry, ok := inv[itemID]
	if !ok || entry.Stack == nil || entry.Stack.Quantity < qty {
		return false
	}
	entry.Stack.Quantity -= qty
	if entry.Stack.Quantity <= 0 {
		delete(inv, itemID)
	}
	return true
}

// AddEquipment stores an equipment instance, regenerating the id on the rare
// key collision.
func (inv Inventory) AddEquipment(eq *Equipment) {
	for {
		if _, ok := inv[eq.ID]; !ok {
			break
		}
		eq.ID = NextEquipmentID()
	}
	inv[eq.ID] = &Entry{Equipment: eq}
}

// Equipment returns the instance with the given id, if held.
func (inv Inventory) Equipment(id string) (*Equipment, bool) {
	entry, ok := inv[id]
	if !ok || entry.Equipment == nil {
		return nil, false
	}
	return entry.Equipment, true
}

// RemoveEquipment takes an equipment instance out of the inventory.
func (inv Inventory) RemoveEquipment(id string) (*Equipment, bool) {
	entry, ok := inv[id]
	if !ok || entry.Equipment == nil {
		return nil, false
	}
	delete(inv, id)
	return entry.Equipment, true
}

// Equipments lists held equipment instances in stable id order.
func (inv Inventory) Equipments() []*Equipment {
	ids := make([]string, 0, len(inv))
	for id, entry := range inv {
		if entry.Equipment != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]*Equipment, 0, len(ids))
	for _, id := range ids {
		out = append(out, inv[id].Equipment)
	}
	return out
}
