package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vpp-configurator/internal/dto"
	"vpp-configurator/internal/pkg/logger"
	"vpp-configurator/internal/pkg/serverutils"
	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/fallback"
	"vpp-configurator/internal/repository/memory"
	"vpp-configurator/internal/service"
	"vpp-configurator/pkg/batch"
	"vpp-configurator/pkg/events"
	"vpp-configurator/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()

	snap, err := fallback.Snapshot()
	require.NoError(t, err)
	store := memory.NewCatalogRepository(batch.Config{MaxBatchSize: 5, MaxAttempts: 1})
	require.NoError(t, store.Upsert(ctx, contract.CollectionFeatures, snap.Features))
	require.NoError(t, store.Upsert(ctx, contract.CollectionAlaCarteOptions, snap.AlaCarteOptions))
	require.NoError(t, store.Upsert(ctx, contract.CollectionPackages, snap.Packages))

	log := logger.NewNopLogger()
	v := validation.New(log)
	loader := service.NewCatalogLoader(store, memory.NewSnapshotCache(time.Minute), v, log, time.Minute)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewStorefrontController(service.NewStorefrontService(loader)).RegisterRoutes(api)
	NewQuoteController(service.NewQuoteService(loader)).RegisterRoutes(api)
	NewAdminController(service.NewAdminService(store, loader, v, nopPublisher{}, log)).RegisterRoutes(api)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestStorefront_GetPackages(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/api/packages", "")

	require.Equal(t, http.StatusOK, status)
	var res serverutils.Response[[]dto.PackageResponse]
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	require.Len(t, res.Data, 3)
	assert.Equal(t, "gold", res.Data[0].Id)
	assert.Len(t, res.Data[0].Features, 3)
	assert.NotContains(t, body, `"cost"`, "costs never reach the storefront")
}

func TestStorefront_GetAlaCarteCatalog(t *testing.T) {
	status, body := do(t, newTestApp(t), http.MethodGet, "/api/alacarte", "")

	require.Equal(t, http.StatusOK, status)
	var res serverutils.Response[[]dto.AlaCarteOptionResponse]
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Len(t, res.Data, 3)
}

func TestQuote(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/quote", `{"packageId":"gold","optionIds":["opt-keys"]}`)
	require.Equal(t, http.StatusOK, status)
	var res serverutils.Response[dto.QuoteResponse]
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Equal(t, "$2,594.00", res.Data.FormattedTotal)

	status, _ = do(t, app, http.MethodPost, "/api/quote", `{"optionIds":["opt-ceramic"]}`)
	assert.Equal(t, http.StatusBadRequest, status, "unpublished option")

	status, _ = do(t, app, http.MethodPost, "/api/quote", `{"optionIds":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdmin_CreateFeature_Validation(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/admin/features", `{"name":"Glass","description":"Coating","column":9}`)

	assert.Equal(t, http.StatusBadRequest, status)
	var res serverutils.Response[any]
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "price is required")
	assert.Contains(t, res.Message, "column must be <= 4")

	status, body = do(t, app, http.MethodPost, "/api/admin/features", `{"name":"Glass","description":"Coating","price":120,"column":4}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, `"position":2`)
}

func TestAdmin_ErrorMapping(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodDelete, "/api/admin/features/ghost", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := do(t, app, http.MethodPut, "/api/admin/features/reorder", `{"1":["ghost"]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "ghost")

	status, _ = do(t, app, http.MethodPut, "/api/admin/features/rustguard-pro", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/admin/features/tire-wheel/promote", "")
	assert.Equal(t, http.StatusCreated, status)
	status, _ = do(t, app, http.MethodPost, "/api/admin/features/tire-wheel/promote", "")
	assert.Equal(t, http.StatusConflict, status)
}

func TestAdmin_ReorderAndBoard(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodPut, "/api/admin/features/reorder", `{"1":["interior-guard"],"4":["theft-etch"]}`)
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, app, http.MethodGet, "/api/admin/features/board", "")
	require.Equal(t, http.StatusOK, status)
	var res serverutils.Response[dto.Board[dto.FeatureResponse]]
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Equal(t, "interior-guard", res.Data.Column1[0].Id)
	assert.Equal(t, "theft-etch", res.Data.Column4[0].Id)
	assert.Empty(t, res.Data.Unassigned)
	require.NotNil(t, res.Data.Column1[0].Cost)
}

func TestAdmin_PublishOption(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodPut, "/api/admin/options/opt-ceramic/publish", `{}`)
	assert.Equal(t, http.StatusBadRequest, status, "published is required")

	status, body := do(t, app, http.MethodPut, "/api/admin/options/opt-ceramic/publish", `{"published":true}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"isPublished":true`)
}

func TestErrorHandlerMiddleware_RecoversPanics(t *testing.T) {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	app.Get("/boom", func(*fiber.Ctx) error { panic("boom") })

	status, body := do(t, app, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, `"success":false`)
}
