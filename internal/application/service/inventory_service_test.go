package service

import (
	"context"
	"testing"

	"github.com/chopdesk/chopdesk-api/internal/domain/entity"
	"github.com/chopdesk/chopdesk-api/internal/domain/enum"
	"github.com/chopdesk/chopdesk-api/internal/domain/repository"
	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/chopdesk/chopdesk-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryEnv struct {
	tenantID  uuid.UUID
	userID    uuid.UUID
	inventory *fakeInventoryRepo
	movements *fakeMovementRepo
	svc       *InventoryService
}

func newInventoryEnv() *inventoryEnv {
	env := &inventoryEnv{
		tenantID:  uuid.New(),
		userID:    uuid.New(),
		inventory: &fakeInventoryRepo{},
		movements: &fakeMovementRepo{},
	}
	env.svc = NewInventoryService(env.inventory, env.movements, &fakeTxManager{})
	return env
}

func (e *inventoryEnv) stock(t *testing.T, productRef uuid.UUID, quantity int) {
	t.Helper()
	require.NoError(t, e.inventory.Create(testCtx(e.tenantID, e.userID), &entity.InventoryItem{
		TenantID:   e.tenantID,
		ProductRef: productRef,
		Quantity:   quantity,
	}))
}

func TestApplyMovementIncrement(t *testing.T) {
	env := newInventoryEnv()
	productRef := uuid.New()
	env.stock(t, productRef, 10)

	movement, err := env.svc.ApplyMovement(testCtx(env.tenantID, env.userID), &ApplyMovementInput{
		ProductRef:   productRef,
		Delta:        5,
		ActorID:      env.userID,
		MovementType: enum.MovementPurchase,
		Reason:       "restock",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, movement.QuantityDelta)
	assert.Equal(t, 10, movement.PreviousQuantity)
	assert.Equal(t, 15, movement.NewQuantity)
	assert.Equal(t, 15, env.inventory.items[0].Quantity)
}

func TestApplyMovementClampsAtZero(t *testing.T) {
	env := newInventoryEnv()
	productRef := uuid.New()
	env.stock(t, productRef, 3)

	movement, err := env.svc.ApplyMovement(testCtx(env.tenantID, env.userID), &ApplyMovementInput{
		ProductRef:   productRef,
		Delta:        -10,
		ActorID:      env.userID,
		MovementType: enum.MovementSaleManual,
		Reason:       "oversold",
	})
	require.NoError(t, err)

	// The movement records the delta actually applied, not the requested -10.
	assert.Equal(t, -3, movement.QuantityDelta)
	assert.Equal(t, 0, movement.NewQuantity)
	assert.Equal(t, 0, env.inventory.items[0].Quantity)
}

func TestApplyMovementProductNotFound(t *testing.T) {
	env := newInventoryEnv()

	_, err := env.svc.ApplyMovement(testCtx(env.tenantID, env.userID), &ApplyMovementInput{
		ProductRef:   uuid.New(),
		Delta:        1,
		ActorID:      env.userID,
		MovementType: enum.MovementAdjustment,
	})
	assert.ErrorIs(t, err, apperror.ErrProductNotFound)
	assert.Empty(t, env.movements.movements)
}

func TestApplyMovementWithoutTenant(t *testing.T) {
	env := newInventoryEnv()
	productRef := uuid.New()
	env.stock(t, productRef, 10)

	_, err := env.svc.ApplyMovement(context.Background(), &ApplyMovementInput{
		ProductRef:   productRef,
		Delta:        1,
		ActorID:      env.userID,
		MovementType: enum.MovementAdjustment,
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestApplyMovementRetriesTransientFailureOnce(t *testing.T) {
	env := newInventoryEnv()
	tx := &flakyTxManager{failures: 1}
	env.svc = NewInventoryService(env.inventory, env.movements, tx)
	productRef := uuid.New()
	env.stock(t, productRef, 10)

	movement, err := env.svc.ApplyMovement(testCtx(env.tenantID, env.userID), &ApplyMovementInput{
		ProductRef:   productRef,
		Delta:        -2,
		ActorID:      env.userID,
		MovementType: enum.MovementSaleManual,
		Reason:       "manual sale",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, -2, movement.QuantityDelta)
	assert.Equal(t, 8, env.inventory.items[0].Quantity)
	assert.Len(t, env.movements.movements, 1)
}

func TestApplyMovementGivesUpAfterOneRetry(t *testing.T) {
	env := newInventoryEnv()
	tx := &flakyTxManager{failures: 2}
	env.svc = NewInventoryService(env.inventory, env.movements, tx)
	productRef := uuid.New()
	env.stock(t, productRef, 10)

	_, err := env.svc.ApplyMovement(testCtx(env.tenantID, env.userID), &ApplyMovementInput{
		ProductRef:   productRef,
		Delta:        -2,
		ActorID:      env.userID,
		MovementType: enum.MovementSaleManual,
		Reason:       "manual sale",
	})
	require.Error(t, err)

	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, 10, env.inventory.items[0].Quantity)
	assert.Empty(t, env.movements.movements)
}

func TestApplyMovementDoesNotRetryDomainErrors(t *testing.T) {
	env := newInventoryEnv()
	tx := &flakyTxManager{}
	env.svc = NewInventoryService(env.inventory, env.movements, tx)

	_, err := env.svc.ApplyMovement(testCtx(env.tenantID, env.userID), &ApplyMovementInput{
		ProductRef:   uuid.New(),
		Delta:        1,
		ActorID:      env.userID,
		MovementType: enum.MovementAdjustment,
	})
	assert.ErrorIs(t, err, apperror.ErrProductNotFound)
	assert.Equal(t, 1, tx.calls)
}

func TestListMovementsFiltersByProduct(t *testing.T) {
	env := newInventoryEnv()
	ctx := testCtx(env.tenantID, env.userID)
	productA := uuid.New()
	productB := uuid.New()
	env.stock(t, productA, 10)
	env.stock(t, productB, 10)

	for _, ref := range []uuid.UUID{productA, productA, productB} {
		_, err := env.svc.ApplyMovement(ctx, &ApplyMovementInput{
			ProductRef:   ref,
			Delta:        1,
			ActorID:      env.userID,
			MovementType: enum.MovementAdjustment,
			Reason:       "count correction",
		})
		require.NoError(t, err)
	}

	result, err := env.svc.ListMovements(ctx, &repository.MovementFilterParams{
		Pagination: pagination.DefaultPagination(),
		ProductRef: &productA,
	})
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
