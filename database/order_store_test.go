package database

import (
	"context"
	"testing"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func newDeliveryOrder() *models.Order {
	return &models.Order{
		ServiceMode:     models.ServiceDelivery,
		Subtotal:        decimal.NewFromInt(380),
		Tax:             decimal.RequireFromString("53.20"),
		Total:           decimal.RequireFromString("433.20"),
		Status:          models.OrderPending,
		DeliveryAddress: strPtr("12 Nile St"),
		ConfirmationPin: strPtr("0427"),
		Items: []models.OrderItem{
			{MenuItemID: 1, Quantity: 1, Price: decimal.NewFromInt(120), Status: models.ItemPending},
			{MenuItemID: 2, Quantity: 1, Price: decimal.NewFromInt(260), Status: models.ItemPending},
		},
	}
}

func TestGroupOrderRowsSkipsJoinArtifacts(t *testing.T) {
	rows := []orderRow{
		{ID: 2, Status: "pending"},
		{ID: 1, Status: "preparing", ItemID: uintPtr(10), ItemMenuName: strPtr("Tiramisu")},
		{ID: 1, Status: "preparing", ItemID: uintPtr(11), ItemStatus: strPtr("completed")},
	}

	orders := groupOrderRows(rows)
	require.Len(t, orders, 2)

	assert.Equal(t, uint(2), orders[0].ID)
	assert.NotNil(t, orders[0].Items)
	assert.Empty(t, orders[0].Items)

	require.Len(t, orders[1].Items, 2)
	assert.Equal(t, "Tiramisu", orders[1].Items[0].MenuItemName)
	assert.Equal(t, models.ItemPending, orders[1].Items[0].Status)
	assert.Equal(t, models.ItemCompleted, orders[1].Items[1].Status)
}

func TestOrderStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(NewTestDB(t))

	order := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, order))
	require.NotZero(t, order.ID)

	got, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceDelivery, got.ServiceMode)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("433.20")))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Crispy French Fries", got.Items[0].MenuItemName)
	assert.True(t, got.Items[1].Price.Equal(decimal.NewFromInt(260)))
	require.NotNil(t, got.ConfirmationPin)
	assert.Equal(t, "0427", *got.ConfirmationPin)

	_, err = store.Get(ctx, 9999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestOrderStoreCreateRejectsEmptyOrder(t *testing.T) {
	store := NewOrderStore(NewTestDB(t))
	err := store.Create(context.Background(), &models.Order{ServiceMode: models.ServicePickUp})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestOrderStoreUpdateAndItems(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(NewTestDB(t))

	order := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, order))

	itemID := order.Items[0].ID
	require.NoError(t, store.UpdateItem(ctx, itemID, map[string]any{"status": models.ItemCompleted}))
	item, err := store.GetItem(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, models.ItemCompleted, item.Status)

	require.NoError(t, store.Update(ctx, order.ID, map[string]any{"status": models.OrderPreparing}))
	got, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, got.Status)

	assert.True(t, utils.IsKind(store.Update(ctx, 9999, map[string]any{"paid": true}), utils.KindNotFound))
	_, err = store.GetItem(ctx, 9999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestOrderStoreListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(NewTestDB(t))

	delivery := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, delivery))

	dineIn := newDeliveryOrder()
	dineIn.ServiceMode = models.ServiceDineIn
	dineIn.DeliveryAddress = nil
	dineIn.ConfirmationPin = nil
	dineIn.Status = models.OrderCompleted
	require.NoError(t, store.Create(ctx, dineIn))

	all, err := store.List(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyDineIn, err := store.List(ctx, OrderFilter{ServiceMode: models.ServiceDineIn})
	require.NoError(t, err)
	require.Len(t, onlyDineIn, 1)
	assert.Equal(t, dineIn.ID, onlyDineIn[0].ID)
	assert.Len(t, onlyDineIn[0].Items, 2)

	kitchen, err := store.List(ctx, OrderFilter{Statuses: []models.OrderStatus{models.OrderPending, models.OrderPreparing}, OldestFirst: true})
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	assert.Equal(t, delivery.ID, kitchen[0].ID)

	future := time.Now().Add(time.Hour)
	none, err := store.List(ctx, OrderFilter{Since: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderStoreCascadeDeletesItems(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	store := NewOrderStore(db)

	order := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, order))
	require.NoError(t, db.Delete(&models.Order{}, order.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderStoreSummaryAndRevenue(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(NewTestDB(t))

	paid := newDeliveryOrder()
	paid.Paid = true
	require.NoError(t, store.Create(ctx, paid))

	completed := newDeliveryOrder()
	completed.ServiceMode = models.ServicePickUp
	completed.Status = models.OrderCompleted
	completed.Paid = true
	require.NoError(t, store.Create(ctx, completed))

	open := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, open))

	summary, err := store.Summary(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, OrderSummary{Total: 3, Completed: 1, Incomplete: 2}, summary)

	entries, err := store.RevenueEntries(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestOrderStoreHistoryConfirmationAndNotifications(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(NewTestDB(t))

	order := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, order))

	err := store.Transaction(ctx, func(tx *OrderStore) error {
		if err := tx.AppendHistory(ctx, &models.OrderStatusHistory{OrderID: order.ID, FromStatus: models.OrderPending, ToStatus: models.OrderPreparing, ActorRole: models.RoleKitchen}); err != nil {
			return err
		}
		return tx.CreateNotification(ctx, &models.DeliveryNotification{OrderID: order.ID, Message: "ready"})
	})
	require.NoError(t, err)

	history, err := store.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.OrderPreparing, history[0].ToStatus)

	require.NoError(t, store.SaveConfirmation(ctx, &models.DeliveryConfirmation{OrderID: order.ID, Method: "PIN"}))
	require.NoError(t, store.SaveConfirmation(ctx, &models.DeliveryConfirmation{OrderID: order.ID, Method: "PIN"}))
	conf, err := store.Confirmation(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PIN", conf.Method)

	open, err := store.Notifications(ctx, true)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	n, err := store.AcknowledgeOrder(ctx, order.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	open, err = store.Notifications(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestOrderStoreTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(NewTestDB(t))

	order := newDeliveryOrder()
	require.NoError(t, store.Create(ctx, order))

	err := store.Transaction(ctx, func(tx *OrderStore) error {
		if err := tx.Update(ctx, order.ID, map[string]any{"status": models.OrderPreparing}); err != nil {
			return err
		}
		return utils.PreconditionFailed("stop")
	})
	assert.True(t, utils.IsKind(err, utils.KindPreconditionFailed))

	got, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
}
