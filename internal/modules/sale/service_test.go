package sale

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/auth"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
)

type fakeRepo struct {
	sales map[uuid.UUID]*Sale
}

func newFakeRepo() *fakeRepo { return &fakeRepo{sales: map[uuid.UUID]*Sale{}} }

func (f *fakeRepo) List(_ context.Context, deleted bool) ([]*Sale, error) {
	status := crud.StatusActive
	if deleted {
		status = crud.StatusDeleted
	}
	out := []*Sale{}
	for _, s := range f.sales {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (*Sale, error) {
	if s, ok := f.sales[id]; ok {
		return s, nil
	}
	return nil, apperr.E(apperr.NotFound, "sale not found")
}

func (f *fakeRepo) Create(_ context.Context, s *Sale) error {
	f.sales[s.ID] = s
	return nil
}

func (f *fakeRepo) Update(_ context.Context, s *Sale) error {
	if _, ok := f.sales[s.ID]; !ok {
		return apperr.E(apperr.NotFound, "sale not found")
	}
	f.sales[s.ID] = s
	return nil
}

func (f *fakeRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	s, ok := f.sales[id]
	if !ok {
		return apperr.E(apperr.NotFound, "sale not found")
	}
	s.Status = status
	return nil
}

func (f *fakeRepo) Purge(_ context.Context, id uuid.UUID) error {
	s, ok := f.sales[id]
	if !ok || s.Status != crud.StatusDeleted {
		return apperr.E(apperr.NotFound, "sale not found in trash")
	}
	delete(f.sales, id)
	return nil
}

func (f *fakeRepo) TotalBetween(_ context.Context, from, to time.Time) (float64, error) {
	var total float64
	for _, s := range f.sales {
		if s.Status != crud.StatusActive {
			continue
		}
		if !s.Date.Before(from) && s.Date.Before(to) {
			total += s.Total
		}
	}
	return total, nil
}

func sellerContext() context.Context {
	return auth.ContextWithPrincipal(context.Background(), &auth.Principal{
		ID:       uuid.New(),
		Username: "sofia",
		Role:     "seller",
	})
}

func validRequest() SaleRequest {
	return SaleRequest{
		Items: []SaleItem{{
			ProductName: "Fresas con crema",
			Quantity:    2,
			Total:       90,
		}},
		Subtotal:      90,
		DeliveryFee:   10,
		Total:         100,
		PaymentMethod: "cash",
	}
}

func TestCreateTagsSellerFromContext(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(sellerContext(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, created.SellerID)
	assert.Equal(t, "sofia", created.SellerUsername)
	assert.Equal(t, OutcomeCompleted, created.Outcome)
	assert.Equal(t, crud.StatusActive, created.Status)
}

func TestCreateWithoutPrincipalFails(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validRequest())
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := sellerContext()

	req := validRequest()
	req.Items = nil
	_, err := svc.Create(ctx, req)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err), "empty items")

	req = validRequest()
	req.PaymentMethod = ""
	_, err = svc.Create(ctx, req)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err), "missing payment method")

	req = validRequest()
	req.Total = 150
	_, err = svc.Create(ctx, req)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err), "total mismatch")

	req = validRequest()
	req.CustomerID = "not-a-uuid"
	_, err = svc.Create(ctx, req)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err), "bad customer id")
}

func TestTrashLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := sellerContext()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	id := created.ID.String()

	require.NoError(t, svc.SoftDelete(ctx, id))
	active, _ := svc.List(ctx)
	assert.Empty(t, active)
	trash, _ := svc.ListTrash(ctx)
	assert.Len(t, trash, 1)

	require.NoError(t, svc.Restore(ctx, id))
	// Restoring an already active sale stays a success.
	require.NoError(t, svc.Restore(ctx, id))

	err = svc.Purge(ctx, id)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err), "purge requires trash")

	require.NoError(t, svc.SoftDelete(ctx, id))
	require.NoError(t, svc.Purge(ctx, id))
	assert.Empty(t, repo.sales)
}

func TestGetRejectsBadID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Get(context.Background(), "nope")
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))

	_, err = svc.Get(context.Background(), uuid.NewString())
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestTotalTodayCountsOnlyTodayAndActive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo).(*service)
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	add := func(date time.Time, total float64, status string) {
		id := uuid.New()
		repo.sales[id] = &Sale{ID: id, Date: date, Total: total, Status: status}
	}
	add(now, 120, crud.StatusActive)
	add(now.Add(-2*time.Hour), 80, crud.StatusActive)
	add(now, 999, crud.StatusDeleted)
	add(now.AddDate(0, 0, -1), 500, crud.StatusActive)

	got, err := svc.TotalToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", got.Date)
	assert.Equal(t, 200.0, got.Total)
}
