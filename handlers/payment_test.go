package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodykhalif23/kula-chipo2/config"
	"github.com/moodykhalif23/kula-chipo2/models"
)

func mpesaTestConfig() *config.Config {
	return &config.Config{
		MpesaConsumerKey:    "key",
		MpesaConsumerSecret: "secret",
		MpesaShortcode:      "12345",
		MpesaPasskey:        "passkey",
	}
}

func TestVerifyMpesaActivatesSubscription(t *testing.T) {
	router := setupRouter(t)
	Cfg = mpesaTestConfig()
	t.Cleanup(func() { Cfg = nil })

	vendorUser, vendorToken := createUser(t, "owner@example.com", models.RoleVendor)
	vendor := createVendor(t, vendorUser.ID)

	w := perform(router, http.MethodPost, "/api/mpesa/verify", vendorToken, map[string]string{
		"code": "QAB12CD34E", "plan": "premium",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	var sub models.Subscription
	require.NoError(t, DB.Where("vendor_id = ?", vendor.ID).First(&sub).Error)
	assert.Equal(t, "premium", sub.Plan)
	assert.Equal(t, "59.00", sub.Price.StringFixed(2))
	assert.Equal(t, "QAB12CD34E", sub.Reference)
}

func TestVerifyMpesaReplacesExistingPlan(t *testing.T) {
	router := setupRouter(t)
	Cfg = mpesaTestConfig()
	t.Cleanup(func() { Cfg = nil })

	vendorUser, vendorToken := createUser(t, "owner@example.com", models.RoleVendor)
	vendor := createVendor(t, vendorUser.ID)

	w := perform(router, http.MethodPost, "/api/mpesa/verify", vendorToken, map[string]string{
		"code": "REF1", "plan": "starter",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodPost, "/api/mpesa/verify", vendorToken, map[string]string{
		"code": "REF2", "plan": "featured",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var subs []models.Subscription
	require.NoError(t, DB.Where("vendor_id = ?", vendor.ID).Find(&subs).Error)
	require.Len(t, subs, 1, "a new plan replaces the old one")
	assert.Equal(t, "featured", subs[0].Plan)
}

func TestVerifyMpesaRejectsBlankCode(t *testing.T) {
	router := setupRouter(t)
	Cfg = mpesaTestConfig()
	t.Cleanup(func() { Cfg = nil })

	vendorUser, vendorToken := createUser(t, "owner@example.com", models.RoleVendor)
	createVendor(t, vendorUser.ID)

	w := perform(router, http.MethodPost, "/api/mpesa/verify", vendorToken, map[string]string{
		"code": "   ", "plan": "starter",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyMpesaRejectsUnknownPlan(t *testing.T) {
	router := setupRouter(t)
	Cfg = mpesaTestConfig()
	t.Cleanup(func() { Cfg = nil })

	vendorUser, vendorToken := createUser(t, "owner@example.com", models.RoleVendor)
	createVendor(t, vendorUser.ID)

	w := perform(router, http.MethodPost, "/api/mpesa/verify", vendorToken, map[string]string{
		"code": "REF", "plan": "enterprise",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyMpesaWithoutCredentials(t *testing.T) {
	router := setupRouter(t)
	Cfg = &config.Config{}
	t.Cleanup(func() { Cfg = nil })

	vendorUser, vendorToken := createUser(t, "owner@example.com", models.RoleVendor)
	createVendor(t, vendorUser.ID)

	w := perform(router, http.MethodPost, "/api/mpesa/verify", vendorToken, map[string]string{
		"code": "REF", "plan": "starter",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClientErrorIntakeAcceptsAnything(t *testing.T) {
	router := setupRouter(t)

	w := perform(router, http.MethodPost, "/api/errors", "", map[string]interface{}{
		"message": "ChunkLoadError", "stack": "at /chunk-42.js",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Non-JSON payloads are accepted too.
	req := httptest.NewRequest(http.MethodPost, "/api/errors", strings.NewReader("not json at all"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
