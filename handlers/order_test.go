package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/tracking"
)

func seedOrderWorld(t *testing.T) (vendor models.Vendor, vendorToken, customerToken string) {
	t.Helper()
	vendorUser, vendorToken := createUser(t, "owner@example.com", models.RoleVendor)
	vendor = createVendor(t, vendorUser.ID)
	require.NoError(t, DB.Preload("MenuItems").First(&vendor, vendor.ID).Error)
	_, customerToken = createUser(t, "guest@example.com", models.RoleCustomer)
	return vendor, vendorToken, customerToken
}

func orderPayload(vendor models.Vendor) map[string]interface{} {
	// Two Classic Fries and one Loaded Fries.
	return map[string]interface{}{
		"vendor_id": vendor.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": vendor.MenuItems[0].ID, "quantity": 2},
			{"menu_item_id": vendor.MenuItems[1].ID, "quantity": 1},
		},
	}
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	router := setupRouter(t)
	vendor, _, customerToken := seedOrderWorld(t)

	w := perform(router, http.MethodPost, "/api/orders", customerToken, orderPayload(vendor))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, DB.Preload("Items").First(&order).Error)

	// 2 x 4.99 + 1 x 7.99 = 17.97, plus the 2.99 delivery fee.
	assert.Equal(t, "17.97", order.Subtotal.StringFixed(2))
	assert.Equal(t, "2.99", order.DeliveryFee.StringFixed(2))
	assert.Equal(t, "20.96", order.Total.StringFixed(2))
	assert.Equal(t, tracking.StageConfirmed, order.Status)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Classic Fries", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "4.99", order.Items[0].UnitPrice.StringFixed(2))
}

func TestPlaceOrderRejectsUnknownItem(t *testing.T) {
	router := setupRouter(t)
	vendor, _, customerToken := seedOrderWorld(t)

	payload := map[string]interface{}{
		"vendor_id": vendor.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": 99999, "quantity": 1},
		},
	}
	w := perform(router, http.MethodPost, "/api/orders", customerToken, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	DB.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "no order row on rejection")
}

func TestPlaceOrderRejectsUnavailableItem(t *testing.T) {
	router := setupRouter(t)
	vendor, _, customerToken := seedOrderWorld(t)

	payload := map[string]interface{}{
		"vendor_id": vendor.ID,
		"items": []map[string]interface{}{
			// Truffle Fries are seeded unavailable.
			{"menu_item_id": vendor.MenuItems[2].ID, "quantity": 1},
		},
	}
	w := perform(router, http.MethodPost, "/api/orders", customerToken, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackingViewReflectsStoredStatus(t *testing.T) {
	router := setupRouter(t)
	vendor, _, customerToken := seedOrderWorld(t)

	w := perform(router, http.MethodPost, "/api/orders", customerToken, orderPayload(vendor))
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, DB.First(&order).Error)
	require.NoError(t, DB.Model(&order).Update("status", tracking.StageReady).Error)

	w = perform(router, http.MethodGet, "/api/orders/"+order.Number+"/tracking", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, string(tracking.StageReady), body["status"])
	assert.InDelta(t, 50.0, body["progress"].(float64), 0.0001)

	steps := body["steps"].([]interface{})
	require.Len(t, steps, 5)
	states := make([]string, len(steps))
	for i, s := range steps {
		states[i] = s.(map[string]interface{})["state"].(string)
	}
	assert.Equal(t, []string{"completed", "completed", "current", "pending", "pending"}, states)
}

func TestVendorAdvancesStatusOneStageAtATime(t *testing.T) {
	router := setupRouter(t)
	vendor, vendorToken, customerToken := seedOrderWorld(t)

	w := perform(router, http.MethodPost, "/api/orders", customerToken, orderPayload(vendor))
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, DB.First(&order).Error)

	// One stage forward is accepted.
	w = perform(router, http.MethodPut, "/api/vendor/orders/"+order.Number+"/status", vendorToken,
		map[string]string{"status": string(tracking.StagePreparing)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Skipping ahead is not.
	w = perform(router, http.MethodPut, "/api/vendor/orders/"+order.Number+"/status", vendorToken,
		map[string]string{"status": string(tracking.StageDelivered)})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Re-sending the current stage is a no-op success.
	w = perform(router, http.MethodPut, "/api/vendor/orders/"+order.Number+"/status", vendorToken,
		map[string]string{"status": string(tracking.StagePreparing)})
	assert.Equal(t, http.StatusOK, w.Code)

	// Regression is rejected.
	w = perform(router, http.MethodPut, "/api/vendor/orders/"+order.Number+"/status", vendorToken,
		map[string]string{"status": string(tracking.StageConfirmed)})
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored models.Order
	require.NoError(t, DB.First(&stored, order.ID).Error)
	assert.Equal(t, tracking.StagePreparing, stored.Status)
}

func TestCustomerListsOwnOrdersOnly(t *testing.T) {
	router := setupRouter(t)
	vendor, _, customerToken := seedOrderWorld(t)
	_, otherToken := createUser(t, "other@example.com", models.RoleCustomer)

	w := perform(router, http.MethodPost, "/api/orders", customerToken, orderPayload(vendor))
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(router, http.MethodGet, "/api/orders", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["orders"].([]interface{}), 1)

	w = perform(router, http.MethodGet, "/api/orders", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["orders"].([]interface{}))
}
