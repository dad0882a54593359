package orders

import (
	"context"
	"fmt"
	"sort"
)

// MemoryStore serves orders from an in-memory fixture set. Safe for
// concurrent reads; the data never mutates after construction.
type MemoryStore struct {
	byID       map[string]Order
	byCustomer map[string][]string
}

func NewMemoryStore(all []Order) *MemoryStore {
	s := &MemoryStore{
		byID:       make(map[string]Order, len(all)),
		byCustomer: make(map[string][]string),
	}
	for _, o := range all {
		s.byID[o.ID] = o
		s.byCustomer[o.CustomerID] = append(s.byCustomer[o.CustomerID], o.ID)
	}
	for _, ids := range s.byCustomer {
		sort.Strings(ids)
	}
	return s
}

func (s *MemoryStore) GetOrder(_ context.Context, orderID string) (Order, error) {
	o, ok := s.byID[orderID]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	return o, nil
}

func (s *MemoryStore) GetOrdersByCustomer(_ context.Context, customerID string) ([]Order, error) {
	ids := s.byCustomer[customerID]
	out := make([]Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, nil
}
