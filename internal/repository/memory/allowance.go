package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/allowance"
	"github.com/google/uuid"
)

type allowanceRepositoryImpl struct {
	mu         sync.RWMutex
	allowances map[string]allowance.Allowance
}

func NewAllowanceRepository() allowance.AllowanceRepository {
	return &allowanceRepositoryImpl{allowances: make(map[string]allowance.Allowance)}
}

// Create implements allowance.AllowanceRepository.
func (r *allowanceRepositoryImpl) Create(ctx context.Context, a allowance.Allowance) (allowance.Allowance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.allowances[a.ID] = a
	return a, nil
}

// GetByID implements allowance.AllowanceRepository.
func (r *allowanceRepositoryImpl) GetByID(ctx context.Context, id string) (allowance.Allowance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.allowances[id]
	if !ok {
		return allowance.Allowance{}, allowance.ErrAllowanceNotFound
	}
	return a, nil
}

// ListApprovedByEmployee implements allowance.AllowanceRepository.
func (r *allowanceRepositoryImpl) ListApprovedByEmployee(ctx context.Context, employeeID string) ([]allowance.Allowance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]allowance.Allowance, 0)
	for _, a := range r.allowances {
		if a.EmployeeID == employeeID && a.State == allowance.StateApproved {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FromDate.Before(result[j].FromDate)
	})
	return result, nil
}

// UpdateState implements allowance.AllowanceRepository.
func (r *allowanceRepositoryImpl) UpdateState(ctx context.Context, id string, state allowance.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.allowances[id]
	if !ok {
		return allowance.ErrAllowanceNotFound
	}
	a.State = state
	a.UpdatedAt = time.Now()
	r.allowances[id] = a
	return nil
}
