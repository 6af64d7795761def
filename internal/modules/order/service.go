package order

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/auth"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
	"github.com/dulcesamigas/pos-backend/internal/modules/sale"
	"github.com/dulcesamigas/pos-backend/internal/modules/user"
)

// onlineSellerName tags converted orders that no staff member rang up.
const onlineSellerName = "Online Order"

// idempotencyWindow is how long a submission key blocks replays.
const idempotencyWindow = 24 * time.Hour

// AccountDirectory looks up staff accounts for driver assignment.
type AccountDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.Account, error)
}

// Service defines online order business logic.
type Service interface {
	// Submit accepts a public, unauthenticated order. A repeated
	// idempotency key within the window is rejected as a duplicate.
	Submit(ctx context.Context, req SubmitRequest, idempotencyKey string) (*Order, error)

	List(ctx context.Context) ([]*Order, error)
	UnseenCount(ctx context.Context) (*UnseenCount, error)
	MarkAllSeen(ctx context.Context) error

	UpdateStatus(ctx context.Context, id string, req StatusRequest) (*Order, error)
	AssignDriver(ctx context.Context, id string, req AssignRequest) (*Order, error)

	// Convert turns the order into a ledger sale on behalf of the
	// acting staff member.
	Convert(ctx context.Context, id string, req ConvertRequest) (*sale.Sale, error)

	// MyOrders lists the orders assigned to the calling driver.
	MyOrders(ctx context.Context) ([]*Order, error)

	// FinalizeDelivery is the driver-side conversion. It only succeeds
	// for the driver the order is assigned to.
	FinalizeDelivery(ctx context.Context, id string, req ConvertRequest) (*sale.Sale, error)
}

type service struct {
	repo     Repository
	accounts AccountDirectory
	idem     IdempotencyStore
	now      func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, accounts AccountDirectory, idem IdempotencyStore) Service {
	return &service{repo: repo, accounts: accounts, idem: idem, now: time.Now}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest, idempotencyKey string) (*Order, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}
	if idempotencyKey != "" {
		fresh, err := s.idem.Claim(ctx, idempotencyKey, idempotencyWindow)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, apperr.E(apperr.Conflict, "duplicate order submission")
		}
	}

	o := &Order{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Items:           req.Items,
		Total:           req.Total,
		Status:          StatusReceived,
		CreatedAt:       s.now(),
		UpdatedAt:       s.now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		// The key marks a created order, not an attempt; a held claim
		// would turn every retry into a false duplicate.
		if idempotencyKey != "" {
			_ = s.idem.Release(ctx, idempotencyKey)
		}
		return nil, err
	}
	return o, nil
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

func (s *service) UnseenCount(ctx context.Context) (*UnseenCount, error) {
	n, err := s.repo.CountUnseen(ctx)
	if err != nil {
		return nil, err
	}
	return &UnseenCount{Count: n}, nil
}

func (s *service) MarkAllSeen(ctx context.Context) error {
	return s.repo.MarkAllSeen(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req StatusRequest) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid order id")
	}

	expected := req.ExpectedStatus
	if expected == "" {
		current, err := s.repo.Get(ctx, oid)
		if err != nil {
			return nil, err
		}
		expected = current.Status
	}
	if !canTransition(expected, req.Status) {
		return nil, apperr.Errorf(apperr.Invalid,
			"cannot move order from %s to %s", expected, req.Status)
	}

	if err := s.repo.UpdateStatus(ctx, oid, expected, req.Status); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *service) AssignDriver(ctx context.Context, id string, req AssignRequest) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid order id")
	}
	did, err := uuid.Parse(req.DriverID)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid driver id")
	}

	account, err := s.accounts.GetByID(ctx, did)
	if err != nil {
		return nil, err
	}
	if account.Role != user.RoleDriver {
		return nil, apperr.E(apperr.Invalid, "account is not a driver")
	}
	if account.Status == crud.StatusDeleted {
		return nil, apperr.E(apperr.Invalid, "driver account is deleted")
	}

	o, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCancelled || o.Status == StatusDeliveredPendingSale {
		return nil, apperr.E(apperr.Conflict, "order is no longer assignable")
	}

	if err := s.repo.AssignDriver(ctx, oid, account.ID, account.Username); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *service) Convert(ctx context.Context, id string, req ConvertRequest) (*sale.Sale, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, apperr.E(apperr.Unauthenticated, "no authenticated caller")
	}
	return s.convert(ctx, id, req, func(o *Order, v *sale.Sale) error {
		sellerID := principal.ID
		v.SellerID = &sellerID
		v.SellerUsername = principal.Username
		return nil
	})
}

func (s *service) MyOrders(ctx context.Context) ([]*Order, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, apperr.E(apperr.Unauthenticated, "no authenticated caller")
	}
	return s.repo.ListByDriver(ctx, principal.ID)
}

func (s *service) FinalizeDelivery(ctx context.Context, id string, req ConvertRequest) (*sale.Sale, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, apperr.E(apperr.Unauthenticated, "no authenticated caller")
	}
	return s.convert(ctx, id, req, func(o *Order, v *sale.Sale) error {
		if o.DriverID == nil || *o.DriverID != principal.ID {
			return apperr.E(apperr.Forbidden, "order is assigned to another driver")
		}
		v.SellerUsername = onlineSellerName
		return nil
	})
}

// convert runs the single conversion path shared by staff and drivers.
// The decorate hook runs inside the claim transaction, so a failed
// ownership check rolls the claim back.
func (s *service) convert(ctx context.Context, id string, req ConvertRequest,
	decorate func(*Order, *sale.Sale) error) (*sale.Sale, error) {

	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.E(apperr.Invalid, "invalid order id")
	}
	if req.PaymentMethod == "" {
		return nil, apperr.E(apperr.Invalid, "payment_method is required")
	}
	if req.DeliveryFee < 0 {
		return nil, apperr.E(apperr.Invalid, "delivery_fee cannot be negative")
	}
	var customerID *uuid.UUID
	if req.CustomerID != "" {
		cid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, apperr.E(apperr.Invalid, "invalid customer_id")
		}
		customerID = &cid
	}

	outcome := req.Outcome
	if outcome == "" {
		outcome = sale.OutcomeDelivered
	}

	return s.repo.Convert(ctx, oid, func(o *Order) (*sale.Sale, error) {
		v := &sale.Sale{
			ID:             uuid.New(),
			Date:           s.now(),
			CustomerID:     customerID,
			CustomerName:   o.CustomerName,
			Items:          o.Items,
			Subtotal:       o.Total,
			DeliveryFee:    req.DeliveryFee,
			Total:          o.Total + req.DeliveryFee,
			PaymentMethod:  req.PaymentMethod,
			DriverID:       o.DriverID,
			DriverUsername: o.DriverUsername,
			Outcome:        outcome,
			Status:         crud.StatusActive,
		}
		if err := decorate(o, v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

func validateSubmit(req SubmitRequest) error {
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return apperr.E(apperr.Invalid, "customer name and phone are required")
	}
	if len(req.Items) == 0 {
		return apperr.E(apperr.Invalid, "order must contain at least one item")
	}
	var sum float64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return apperr.E(apperr.Invalid, "item quantity must be positive")
		}
		sum += item.Total
	}
	if math.Abs(req.Total-sum) > 0.005 {
		return apperr.E(apperr.Invalid, "total must equal the sum of item totals")
	}
	return nil
}
