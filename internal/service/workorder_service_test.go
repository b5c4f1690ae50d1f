package service_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sciops/workorder-gin/internal/model"
	"github.com/sciops/workorder-gin/internal/repository"
	"github.com/sciops/workorder-gin/internal/service"
	"github.com/sciops/workorder-gin/internal/statemachine"
	"github.com/sciops/workorder-gin/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (service.WorkOrderService, *store.Store, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WorkOrderRecord{}, &model.StatusHistoryRecord{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	orders := store.New()
	svc := service.NewWorkOrderService(
		orders,
		repository.NewWorkOrderRepository(db),
		repository.NewStatusHistoryRepository(db),
		nil,
		log,
		"OS",
	)
	return svc, orders, db
}

func vehicleRequest() *service.CreateWorkOrderRequest {
	return &service.CreateWorkOrderRequest{
		Kind:        model.KindVehicle,
		RequestedBy: "Sgt. Almeida",
		Description: "pump pressure dropping under load",
		Operational: true,
		Payload:     json.RawMessage(`{"vehicle_id":"CCI-01","vehicle_type":"crash_tender","odometer":42150,"maintenance_kind":"corrective"}`),
	}
}

func TestCreateAssignsTicketAndPersists(t *testing.T) {
	svc, orders, db := newTestService(t)

	order, err := svc.Create(context.Background(), vehicleRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, order.SequenceID)
	assert.Contains(t, order.TicketNumber, "OS-")
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Nil(t, order.CompletedAt)

	// Mirrored into the database row
	var rec model.WorkOrderRecord
	require.NoError(t, db.Where("ticket_number = ?", order.TicketNumber).First(&rec).Error)
	assert.Equal(t, "vehicle", rec.Kind)
	assert.Equal(t, "pending", rec.Status)

	// Creation is recorded in the history
	history, err := svc.History(order.TicketNumber)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "", history[0].FromStatus)
	assert.Equal(t, "pending", history[0].ToStatus)
	assert.Equal(t, "system", history[0].Operator)

	second, err := svc.Create(context.Background(), vehicleRequest())
	require.NoError(t, err)
	assert.Equal(t, order.SequenceID+1, second.SequenceID)
	assert.Equal(t, 2, orders.Len())
}

func TestCreateRejectsInvalidOrderWithoutSideEffects(t *testing.T) {
	svc, orders, db := newTestService(t)

	req := &service.CreateWorkOrderRequest{
		Kind:    model.KindFuel,
		Payload: json.RawMessage(`{}`),
	}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "requested_by is required")
	assert.Contains(t, verr.Errors, "description is required")
	assert.Contains(t, verr.Errors, "vehicle_id is required")
	assert.Contains(t, verr.Errors, "requested_fill_percent is required")

	// Nothing was created anywhere
	assert.Equal(t, 0, orders.Len())
	var count int64
	require.NoError(t, db.Model(&model.WorkOrderRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &service.CreateWorkOrderRequest{
		Kind:        "plumbing",
		RequestedBy: "Sgt. Almeida",
		Description: "leak",
		Payload:     json.RawMessage(`{}`),
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGetUnknownTicket(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get("OS-2026-99999")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateMergesPartialEdit(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, err := svc.Create(context.Background(), vehicleRequest())
	require.NoError(t, err)

	desc := "pump pressure dropping, foam line suspect"
	updated, err := svc.Update(context.Background(), order.TicketNumber, &service.UpdateWorkOrderRequest{
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	// Untouched fields survive the merge
	assert.Equal(t, "Sgt. Almeida", updated.RequestedBy)
	vehicle := updated.Payload.(model.VehiclePayload)
	assert.Equal(t, "CCI-01", vehicle.VehicleID)
}

func TestUpdateRejectsIdentityChanges(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, err := svc.Create(context.Background(), vehicleRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), order.TicketNumber, &service.UpdateWorkOrderRequest{
		Kind:         model.KindFuel,
		SequenceID:   99,
		TicketNumber: "OS-2026-99999",
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "kind cannot be changed")
	assert.Contains(t, verr.Errors, "sequence_id cannot be changed")
	assert.Contains(t, verr.Errors, "ticket_number cannot be changed")

	// The stored order is untouched
	got, err := svc.Get(order.TicketNumber)
	require.NoError(t, err)
	assert.Equal(t, order.SequenceID, got.SequenceID)
}

func TestUpdateRejectsInvalidMergeResult(t *testing.T) {
	svc, _, _ := newTestService(t)

	order, err := svc.Create(context.Background(), vehicleRequest())
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), order.TicketNumber, &service.UpdateWorkOrderRequest{
		Description: &empty,
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "description is required")

	got, err := svc.Get(order.TicketNumber)
	require.NoError(t, err)
	assert.Equal(t, order.Description, got.Description)
}

func TestSetStatusFullLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, vehicleRequest())
	require.NoError(t, err)
	ticket := order.TicketNumber

	order, err = svc.SetStatus(ctx, ticket, model.StatusInProgress, "almeida")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, order.Status)

	order, err = svc.SetStatus(ctx, ticket, model.StatusAwaitingApproval, "almeida")
	require.NoError(t, err)

	order, err = svc.SetStatus(ctx, ticket, model.StatusCompleted, "costa")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)

	// Reopening clears the completion timestamp
	order, err = svc.SetStatus(ctx, ticket, model.StatusPending, "costa")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Nil(t, order.CompletedAt)

	history, err := svc.History(ticket)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, "completed", history[3].ToStatus)
	assert.Equal(t, "costa", history[3].Operator)
	assert.Equal(t, "pending", history[4].ToStatus)
}

func TestSetStatusRejectsIllegalTransition(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, vehicleRequest())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, order.TicketNumber, model.StatusCompleted, "almeida")
	require.Error(t, err)

	var terr *statemachine.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, model.StatusPending, terr.From)
	assert.Equal(t, model.StatusCompleted, terr.To)

	// The order stays pending and the attempt is not in the history
	got, err := svc.Get(order.TicketNumber)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	history, err := svc.History(order.TicketNumber)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSetStatusCancelledIsTerminal(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, vehicleRequest())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, order.TicketNumber, model.StatusCancelled, "almeida")
	require.NoError(t, err)

	for _, target := range model.Statuses() {
		if target == model.StatusCancelled {
			continue
		}
		_, err := svc.SetStatus(ctx, order.TicketNumber, target, "almeida")
		var terr *statemachine.TransitionError
		assert.ErrorAs(t, err, &terr, "cancelled -> %s must be rejected", target)
	}
}

func TestListScopeFiltering(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, vehicleRequest())
	require.NoError(t, err)
	second, err := svc.Create(ctx, vehicleRequest())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, second.TicketNumber, model.StatusCancelled, "almeida")
	require.NoError(t, err)

	open := svc.List(store.Filter{Scope: store.ScopeOpen})
	require.Len(t, open, 1)
	assert.Equal(t, first.TicketNumber, open[0].TicketNumber)

	closed := svc.List(store.Filter{Scope: store.ScopeClosed})
	require.Len(t, closed, 1)
	assert.Equal(t, second.TicketNumber, closed[0].TicketNumber)
}

func TestLoadStoreRestoresSession(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, vehicleRequest())
	require.NoError(t, err)

	// A fresh store rebuilt from the database sees the same order
	reloaded := store.New()
	require.NoError(t, service.LoadStore(reloaded, repository.NewWorkOrderRepository(db)))
	got, ok := reloaded.Get(created.TicketNumber)
	require.True(t, ok)
	assert.Equal(t, created.SequenceID, got.SequenceID)

	// Numbering resumes after the restored orders
	seq, _ := reloaded.NextTicketNumber("OS", time.Now())
	assert.Equal(t, created.SequenceID+1, seq)
}

func TestLoadStoreRejectsUnmigratedStatus(t *testing.T) {
	_, _, db := newTestService(t)

	rec, err := model.NewWorkOrderRecord(&model.WorkOrder{
		SequenceID:   1,
		TicketNumber: "OS-2019-00001",
		RequestedBy:  "Sgt. Almeida",
		Description:  "routine check",
		RequestedAt:  time.Now(),
		Status:       model.StatusPending,
		Payload:      model.VehiclePayload{VehicleID: "CCI-01"},
	})
	require.NoError(t, err)
	rec.Status = "arquivada"
	require.NoError(t, db.Create(rec).Error)

	err = service.LoadStore(store.New(), repository.NewWorkOrderRepository(db))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arquivada")
}
