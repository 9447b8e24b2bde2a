package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/adjustment"
	"github.com/google/uuid"
)

type adjustmentRepositoryImpl struct {
	mu          sync.RWMutex
	adjustments map[string]adjustment.Adjustment
}

func NewAdjustmentRepository() adjustment.AdjustmentRepository {
	return &adjustmentRepositoryImpl{adjustments: make(map[string]adjustment.Adjustment)}
}

// Create implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) Create(ctx context.Context, adj adjustment.Adjustment) (adjustment.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	adj.ID = uuid.NewString()
	adj.CreatedAt = now
	adj.UpdatedAt = now
	r.adjustments[adj.ID] = adj
	return adj, nil
}

// GetByID implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) GetByID(ctx context.Context, id string) (adjustment.Adjustment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adj, ok := r.adjustments[id]
	if !ok {
		return adjustment.Adjustment{}, adjustment.ErrAdjustmentNotFound
	}
	return adj, nil
}

// GetByEmployeeID implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]adjustment.Adjustment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]adjustment.Adjustment, 0)
	for _, adj := range r.adjustments {
		if adj.EmployeeID == employeeID {
			result = append(result, adj)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AdjustmentDate.Before(result[j].AdjustmentDate)
	})
	return result, nil
}

// UpdateState implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) UpdateState(ctx context.Context, id string, state adjustment.State, rejectionReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	adj, ok := r.adjustments[id]
	if !ok {
		return adjustment.ErrAdjustmentNotFound
	}
	adj.State = state
	adj.RejectionReason = rejectionReason
	adj.UpdatedAt = time.Now()
	r.adjustments[id] = adj
	return nil
}
