package service

import (
	"context"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/domain/customer"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	GetTierInfo(ctx context.Context, id string) (*dto.TierInfoResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &customer.Customer{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		LicenseNumber:     req.LicenseNumber,
		TotalRentals:      0,
		LifetimeValue:     decimal.Zero,
		ApplyTierDiscount: lo.FromPtrOr(req.ApplyTierDiscount, true),
		Metadata:          req.Metadata,
		EnvironmentID:     types.GetEnvironmentID(ctx),
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("customer created", "customer_id", c.ID, "name", c.Name)
	return s.toResponse(c)
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(c)
}

func (s *customerService) ListCustomers(ctx context.Context, filter *types.CustomerFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = &types.CustomerFilter{QueryFilter: types.DefaultQueryFilter}
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp, err := s.toResponse(c)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}
	return &dto.ListCustomersResponse{Items: items, Total: total}, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.LicenseNumber != nil {
		c.LicenseNumber = *req.LicenseNumber
	}
	if req.ApplyTierDiscount != nil {
		c.ApplyTierDiscount = *req.ApplyTierDiscount
	}
	if req.Blacklisted != nil {
		c.Blacklisted = *req.Blacklisted
	}
	if req.Metadata != nil {
		c.Metadata = req.Metadata
	}
	c.UpdatedBy = types.GetUserID(ctx)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return s.toResponse(c)
}

// GetTierInfo reports the customer's current tier, its benefits, and the
// distance to the next tier. The tier is derived from the completed rental
// count on every call, never stored.
func (s *customerService) GetTierInfo(ctx context.Context, id string) (*dto.TierInfoResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tier, err := s.TierTable.Resolve(c.TotalRentals)
	if err != nil {
		return nil, err
	}

	resp := &dto.TierInfoResponse{
		CustomerID:        c.ID,
		Tier:              tier.ID,
		TotalRentals:      c.TotalRentals,
		ApplyTierDiscount: c.ApplyTierDiscount,
		Benefits: dto.TierBenefits{
			OverageRate:     tier.OverageRate,
			DiscountPercent: tier.DiscountPercent,
			KmBonusPerDay:   tier.KmBonusPerDay,
		},
	}

	if next := s.TierTable.Next(tier.ID); next != nil {
		resp.NextTier = &dto.NextTierProgress{
			TierID:           next.ID,
			MinRentals:       next.MinRentals,
			RentalsRemaining: next.MinRentals - c.TotalRentals,
		}
	}
	return resp, nil
}

func (s *customerService) toResponse(c *customer.Customer) (*dto.CustomerResponse, error) {
	tier, err := s.TierTable.Resolve(c.TotalRentals)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{Customer: c, Tier: tier.ID}, nil
}
