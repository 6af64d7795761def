package sale

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/auth"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

// Service defines the sale ledger business logic.
type Service interface {
	crud.Service[*Sale, SaleRequest]

	Get(ctx context.Context, id string) (*Sale, error)

	// TotalToday aggregates active sales for the current calendar day.
	TotalToday(ctx context.Context) (*DailyTotal, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new sale service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx, false)
}

func (s *service) ListTrash(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx, true)
}

func (s *service) Create(ctx context.Context, req SaleRequest) (*Sale, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, apperr.E(apperr.Unauthenticated, "no authenticated seller")
	}

	outcome := req.Outcome
	if outcome == "" {
		outcome = OutcomeCompleted
	}
	sellerID := principal.ID
	v := &Sale{
		ID:             uuid.New(),
		Date:           s.now(),
		CustomerName:   req.CustomerName,
		Items:          req.Items,
		Subtotal:       req.Subtotal,
		DeliveryFee:    req.DeliveryFee,
		Total:          req.Total,
		PaymentMethod:  req.PaymentMethod,
		SellerID:       &sellerID,
		SellerUsername: principal.Username,
		Outcome:        outcome,
		Status:         crud.StatusActive,
	}
	if req.CustomerID != "" {
		cid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, apperr.E(apperr.Invalid, "invalid customer_id")
		}
		v.CustomerID = &cid
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, id string, req SaleRequest) (*Sale, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	v.CustomerName = req.CustomerName
	v.Items = req.Items
	v.Subtotal = req.Subtotal
	v.DeliveryFee = req.DeliveryFee
	v.Total = req.Total
	v.PaymentMethod = req.PaymentMethod
	if req.Outcome != "" {
		v.Outcome = req.Outcome
	}
	v.CustomerID = nil
	if req.CustomerID != "" {
		cid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, apperr.E(apperr.Invalid, "invalid customer_id")
		}
		v.CustomerID = &cid
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, v.ID, crud.StatusDeleted)
}

func (s *service) Restore(ctx context.Context, id string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, v.ID, crud.StatusActive)
}

func (s *service) Purge(ctx context.Context, id string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Purge(ctx, v.ID)
}

func (s *service) Get(ctx context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid sale id")
	}
	return s.repo.Get(ctx, uid)
}

func (s *service) TotalToday(ctx context.Context) (*DailyTotal, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	total, err := s.repo.TotalBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &DailyTotal{Date: from.Format("2006-01-02"), Total: total}, nil
}

func validate(req SaleRequest) error {
	if len(req.Items) == 0 {
		return apperr.E(apperr.Invalid, "sale must contain at least one item")
	}
	if req.PaymentMethod == "" {
		return apperr.E(apperr.Invalid, "payment_method is required")
	}
	if req.DeliveryFee < 0 {
		return apperr.E(apperr.Invalid, "delivery_fee cannot be negative")
	}
	if math.Abs(req.Total-(req.Subtotal+req.DeliveryFee)) > 0.005 {
		return apperr.E(apperr.Invalid, "total must equal subtotal plus delivery_fee")
	}
	return nil
}
