package statutory

import (
	"context"

	"github.com/vetanpay/payroll-backend-go/internal/domain/statutory"
	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
)

// Service owns the statutory configuration and the leave policy. Writes
// are restricted to roles with finalize authority since a rate change
// silently alters every subsequent payroll run.
type Service struct {
	repo statutory.Repository
}

func NewService(repo statutory.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetConfig(ctx context.Context) (statutory.Config, error) {
	return s.repo.GetConfig(ctx)
}

func (s *Service) UpdateConfig(ctx context.Context, actor user.Role, req statutory.UpdateConfigRequest) (statutory.Config, error) {
	if !actor.CanFinalize() {
		return statutory.Config{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return statutory.Config{}, err
	}

	cfg := req.ToConfig()
	if len(cfg.LWFMonths) == 0 {
		cfg.LWFMonths = statutory.DefaultLWFMonths(cfg.LWFCycle)
	}

	existing, err := s.repo.GetConfig(ctx)
	if err == nil {
		cfg.ID = existing.ID
	} else if err != statutory.ErrConfigNotFound {
		return statutory.Config{}, err
	}

	return s.repo.UpsertConfig(ctx, cfg)
}

func (s *Service) GetLeavePolicy(ctx context.Context) (statutory.LeavePolicy, error) {
	return s.repo.GetLeavePolicy(ctx)
}

func (s *Service) UpdateLeavePolicy(ctx context.Context, actor user.Role, req statutory.UpdateLeavePolicyRequest) (statutory.LeavePolicy, error) {
	if !actor.CanFinalize() {
		return statutory.LeavePolicy{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return statutory.LeavePolicy{}, err
	}

	policy := statutory.LeavePolicy{
		ELPerYear:         req.ELPerYear,
		ELMaxCarryForward: req.ELMaxCarryForward,
		SLPerYear:         req.SLPerYear,
		CLPerYear:         req.CLPerYear,
	}

	existing, err := s.repo.GetLeavePolicy(ctx)
	if err == nil {
		policy.ID = existing.ID
	} else if err != statutory.ErrLeavePolicyNotFound {
		return statutory.LeavePolicy{}, err
	}

	return s.repo.UpsertLeavePolicy(ctx, policy)
}
