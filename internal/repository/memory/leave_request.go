package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepositoryImpl struct {
	mu       sync.RWMutex
	requests map[string]leave.Request
}

func NewLeaveRequestRepository() leave.RequestRepository {
	return &leaveRequestRepositoryImpl{requests: make(map[string]leave.Request)}
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	req.ID = uuid.NewString()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests[req.ID] = req
	return req, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

// GetByEmployeeID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]leave.Request, 0)
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			result = append(result, req)
		}
	}
	sortRequests(result)
	return result, nil
}

// ListApprovedOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]leave.Request, 0)
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Status == leave.StatusApproved &&
			!req.StartDate.After(end) && !req.EndDate.Before(start) {
			result = append(result, req)
		}
	}
	sortRequests(result)
	return result, nil
}

// UpdateStatus implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, approvedBy *string, approvedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Status = status
	req.ApprovedBy = approvedBy
	req.ApprovedAt = approvedAt
	req.UpdatedAt = time.Now()
	r.requests[id] = req
	return nil
}

func sortRequests(requests []leave.Request) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].StartDate.Before(requests[j].StartDate)
	})
}
