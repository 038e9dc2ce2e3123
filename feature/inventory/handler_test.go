package inventory

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stock-reconciler/feature/inventory/models"
)

func setupTestApp(t *testing.T, src Source) *fiber.App {
	t.Helper()
	app := fiber.New()
	svc, err := NewService(testConfig(), src, zap.NewNop(), nil)
	require.NoError(t, err)
	handler := NewHandler(svc, zap.NewNop())
	handler.RegisterRoutes(app)
	return app
}

func TestHandleDetail(t *testing.T) {
	app := setupTestApp(t, fullSource(t))

	req := httptest.NewRequest("GET", "/inventory/detail", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var rows []models.DetailRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.Len(t, rows, 3)
}

func TestHandleSummary(t *testing.T) {
	app := setupTestApp(t, fullSource(t))

	req := httptest.NewRequest("GET", "/inventory/summary", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var rows []models.SummaryRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].MaterialCode)
	assert.Equal(t, "CT", rows[0].Province)
	assert.Equal(t, -2, rows[0].DeltaUnits)
}

func TestHandleStatus_BeforeAnyRun(t *testing.T) {
	app := setupTestApp(t, fullSource(t))

	req := httptest.NewRequest("GET", "/inventory/status", nil)
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleStatus_AfterRun(t *testing.T) {
	app := setupTestApp(t, fullSource(t))

	_, err := app.Test(httptest.NewRequest("GET", "/inventory/summary", nil), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/status", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var info models.RunInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.NotEmpty(t, info.Fingerprint)
	assert.Equal(t, 3, info.DetailRows)
	assert.Equal(t, 1, info.SummaryRows)
}

func TestHandleReload(t *testing.T) {
	app := setupTestApp(t, fullSource(t))

	resp, err := app.Test(httptest.NewRequest("POST", "/inventory/reload", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var info models.RunInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.False(t, info.Cached)
}

func TestHandleDetail_MissingInput(t *testing.T) {
	src := fullSource(t)
	delete(src.files, "units/export.csv")
	app := setupTestApp(t, src)

	resp, err := app.Test(httptest.NewRequest("GET", "/inventory/detail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
