package roster

import (
	"context"
	"sync"

	"github.com/jonathan/invitation-letters/internal/types"
)

// MemoryRepository is an in-process Repository. Roster order is insertion order.
type MemoryRepository struct {
	mu        sync.RWMutex
	employees []types.Employee
	index     map[int64]int
	invited   []int64
}

// NewMemoryRepository creates a MemoryRepository seeded with employees.
func NewMemoryRepository(employees ...types.Employee) *MemoryRepository {
	r := &MemoryRepository{index: make(map[int64]int)}
	_ = r.UpsertEmployees(context.Background(), employees)
	return r
}

func (r *MemoryRepository) ListEmployees(_ context.Context) ([]types.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]types.Employee(nil), r.employees...), nil
}

func (r *MemoryRepository) UpsertEmployees(_ context.Context, employees []types.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range employees {
		if i, ok := r.index[e.ID]; ok {
			r.employees[i] = e
			continue
		}
		r.index[e.ID] = len(r.employees)
		r.employees = append(r.employees, e)
	}
	return nil
}

func (r *MemoryRepository) ListInvited(_ context.Context) ([]types.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.Employee, 0, len(r.invited))
	for _, id := range r.invited {
		if i, ok := r.index[id]; ok {
			out = append(out, r.employees[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) SetInvited(_ context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invited = append([]int64(nil), ids...)
	return nil
}

func (r *MemoryRepository) Close() {}
