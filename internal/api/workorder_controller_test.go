package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sciops/workorder-gin/internal/api"
	"github.com/sciops/workorder-gin/internal/model"
	"github.com/sciops/workorder-gin/internal/repository"
	"github.com/sciops/workorder-gin/internal/service"
	"github.com/sciops/workorder-gin/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WorkOrderRecord{}, &model.StatusHistoryRecord{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := service.NewWorkOrderService(
		store.New(),
		repository.NewWorkOrderRepository(db),
		repository.NewStatusHistoryRepository(db),
		nil,
		log,
		"OS",
	)
	controller := api.NewWorkOrderController(svc)

	router := gin.New()
	v1 := router.Group("/api/v1")
	orders := v1.Group("/work-orders")
	orders.GET("/kinds", controller.Kinds)
	orders.GET("/fields/:kind", controller.Fields)
	orders.POST("", controller.Create)
	orders.GET("", controller.List)
	orders.GET("/:ticket", controller.Get)
	orders.PUT("/:ticket", controller.Update)
	orders.POST("/:ticket/status", controller.SetStatus)
	orders.GET("/:ticket/history", controller.History)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createOrder(t *testing.T, router *gin.Engine) string {
	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders", gin.H{
		"kind":         "vehicle",
		"requested_by": "Sgt. Almeida",
		"description":  "pump pressure dropping under load",
		"operational":  true,
		"payload": gin.H{
			"vehicle_id":       "CCI-01",
			"vehicle_type":     "crash_tender",
			"odometer":         42150,
			"maintenance_kind": "corrective",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			TicketNumber string `json:"ticket_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.TicketNumber)
	return resp.Data.TicketNumber
}

func TestCreateWorkOrderEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders", gin.H{
		"kind":         "fuel",
		"requested_by": "Cb. Ferreira",
		"description":  "tank below thirty percent",
		"operational":  true,
		"payload": gin.H{
			"vehicle_id":             "CCI-07",
			"fuel_type":              "diesel",
			"requested_fill_percent": 100,
			"current_fill_percent":   30,
			"urgency":                "high",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code int             `json:"code"`
		Data model.WorkOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Code)
	assert.Equal(t, model.StatusPending, resp.Data.Status)
	assert.Equal(t, 1, resp.Data.SequenceID)

	fuel, ok := resp.Data.Payload.(model.FuelPayload)
	require.True(t, ok)
	assert.Equal(t, "CCI-07", fuel.VehicleID)
	require.NotNil(t, fuel.RequestedFillPercent)
	assert.Equal(t, 100, *fuel.RequestedFillPercent)
}

func TestCreateWorkOrderValidationFailure(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders", gin.H{
		"kind":    "structural",
		"payload": gin.H{},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "requested_by is required")
	assert.Contains(t, resp.Errors, "description is required")
	assert.Contains(t, resp.Errors, "location is required")
}

func TestCreateWorkOrderUnknownKind(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders", gin.H{
		"kind":         "plumbing",
		"requested_by": "Sgt. Almeida",
		"description":  "leak",
		"payload":      gin.H{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetWorkOrderEndpoint(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/work-orders/"+ticket, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders/OS-2026-99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateWorkOrderEndpoint(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/v1/work-orders/"+ticket, gin.H{
		"description": "pump pressure dropping, foam line suspect",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data model.WorkOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pump pressure dropping, foam line suspect", resp.Data.Description)
}

func TestUpdateWorkOrderRejectsKindChange(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/v1/work-orders/"+ticket, gin.H{
		"kind": "fuel",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "kind cannot be changed")
}

func TestSetStatusEndpoint(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders/"+ticket+"/status", gin.H{
		"status":   "in_progress",
		"operator": "almeida",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data model.WorkOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusInProgress, resp.Data.Status)
}

func TestSetStatusIllegalTransition(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders/"+ticket+"/status", gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "illegal status transition", resp.Message)
	assert.Contains(t, resp.Detail, "pending")
	assert.Contains(t, resp.Detail, "completed")
}

func TestSetStatusAcceptsLegacyAlias(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders/"+ticket+"/status", gin.H{
		"status": "Em Andamento",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestListWorkOrdersEndpoint(t *testing.T) {
	router := setupRouter(t)
	first := createOrder(t, router)
	second := createOrder(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders/"+second+"/status", gin.H{
		"status": "cancelled",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []model.WorkOrder `json:"data"`
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders?status=open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, first, resp.Data[0].TicketNumber)

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders?status=cancelled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, second, resp.Data[0].TicketNumber)

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders?status=nonsense", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders?kind=vehicle&q=cci-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestHistoryEndpoint(t *testing.T) {
	router := setupRouter(t)
	ticket := createOrder(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/work-orders/"+ticket+"/status", gin.H{
		"status":   "in_progress",
		"operator": "almeida",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders/"+ticket+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []model.StatusHistoryRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "pending", resp.Data[0].ToStatus)
	assert.Equal(t, "in_progress", resp.Data[1].ToStatus)
	assert.Equal(t, "almeida", resp.Data[1].Operator)
}

func TestKindsEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/work-orders/kinds", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []model.Kind `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, model.Kinds(), resp.Data)
}

func TestFieldsEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/work-orders/fields/fuel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Kind   model.Kind        `json:"kind"`
			Fields []model.FieldSpec `json:"fields"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.KindFuel, resp.Data.Kind)

	names := make([]string, 0, len(resp.Data.Fields))
	for _, f := range resp.Data.Fields {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "requested_fill_percent")

	w = doJSON(t, router, http.MethodGet, "/api/v1/work-orders/fields/plumbing", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
