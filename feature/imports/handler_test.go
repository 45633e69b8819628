package imports

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"store-ops/core/middleware/auth"
	"store-ops/core/middleware/rayid"
	"store-ops/core/reconcile"
	"store-ops/core/storage"
	"store-ops/core/storage/mocks"
	"store-ops/feature/masterdata/masterdatatest"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testRayID = "6f1c3c1e-8d55-4f5e-9a63-0d4b1d8f2a10"

func setupTestApp(t *testing.T, perms PermissionChecker, client *mocks.Client) *fiber.App {
	db := seed(t)
	var archive *storage.Archive
	if client != nil {
		archive = newTestArchive(client)
	}
	feature := NewFeature(masterdatatest.Engine(db), DefaultRegistry(), perms, archive, zap.NewNop())
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	app.Use(rayid.New())
	app.Use(auth.New(auth.Config{}))
	require.NoError(t, feature.Load(app))
	return app
}

func jsonRequest(t *testing.T, target string, body any, userID string) *http.Request {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(auth.HeaderUserID, userID)
	}
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandleImport_JSON(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	body := map[string]any{"rows": []map[string]any{
		{"row_number": 10, "Store IFS": "S01", "SS": "E-SS", "AH": "E-AH"},
		{"row_number": 11, "Store IFS": "S01", "SS": "E-SS", "AH": "E-AH"},
	}}
	resp, err := app.Test(jsonRequest(t, "/imports/store-employee?batch_size=1", body, "7"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[reconcile.BatchResult](t, resp)
	assert.Equal(t, "store-employee", result.Entity)
	assert.Equal(t, []int{10}, result.InsertedRowNumbers)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 11, result.Errors[0].Row)
	assert.Equal(t, "S01", result.Success[0].Data["Store IFS"])
	_, leaked := result.Success[0].Data["row_number"]
	assert.False(t, leaked)
}

func TestHandleImport_StatusCodes(t *testing.T) {
	row := map[string]any{"rows": []map[string]any{{"Store IFS": "S01", "SS": "E-SS", "AH": "E-AH"}}}

	forbid := new(mockPermissions)
	forbid.On("CheckPermission", mock.Anything, uint(7), "warehouse_employees", UploadAction, uint(0)).Return(false, nil)

	tests := []struct {
		name   string
		perms  PermissionChecker
		req    func(t *testing.T) *http.Request
		status int
		errMsg string
	}{
		{
			name:   "missing actor",
			req:    func(t *testing.T) *http.Request { return jsonRequest(t, "/imports/store-employee", row, "") },
			status: fiber.StatusUnauthorized,
		},
		{
			name:   "malformed actor",
			req:    func(t *testing.T) *http.Request { return jsonRequest(t, "/imports/store-employee", row, "seven") },
			status: fiber.StatusBadRequest,
		},
		{
			name:   "forbidden",
			perms:  forbid,
			req:    func(t *testing.T) *http.Request { return jsonRequest(t, "/imports/store-employee", row, "7") },
			status: fiber.StatusForbidden,
		},
		{
			name:   "unknown entity",
			req:    func(t *testing.T) *http.Request { return jsonRequest(t, "/imports/invoice", row, "7") },
			status: fiber.StatusNotFound,
		},
		{
			name:   "bad batch size",
			req:    func(t *testing.T) *http.Request { return jsonRequest(t, "/imports/store-employee?batch_size=0", row, "7") },
			status: fiber.StatusBadRequest,
			errMsg: `batch_size must be a positive integer, got "0"`,
		},
		{
			name:   "no rows",
			req:    func(t *testing.T) *http.Request { return jsonRequest(t, "/imports/store-employee", map[string]any{"rows": []any{}}, "7") },
			status: fiber.StatusBadRequest,
			errMsg: reconcile.ErrNoRows.Error(),
		},
		{
			name: "duplicate row numbers",
			req: func(t *testing.T) *http.Request {
				return jsonRequest(t, "/imports/store-employee", map[string]any{"rows": []map[string]any{
					{"row_number": 2, "Store IFS": "S01"}, {"row_number": 2, "Store IFS": "S02"},
				}}, "7")
			},
			status: fiber.StatusBadRequest,
			errMsg: "rows[1]: row_number 2 is used twice",
		},
		{
			name: "invalid JSON",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/imports/store-employee", strings.NewReader("{"))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set(auth.HeaderUserID, "7")
				return req
			},
			status: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t, tt.perms, nil)

			resp, err := app.Test(tt.req(t))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode[map[string]string](t, resp)
			assert.NotEmpty(t, body["error"])
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, body["error"])
			}
		})
	}
}

func TestHandleImport_Multipart(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "store-ops", "imports/hurdle/"+testRayID+"/hurdles.csv", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	app := setupTestApp(t, nil, client)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "hurdles.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(hurdleCSV))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/imports/hurdle", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(auth.HeaderUserID, "7")
	req.Header.Set(rayid.Header, testRayID)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testRayID, resp.Header.Get(rayid.Header))

	result := decode[reconcile.BatchResult](t, resp)
	assert.Equal(t, 1, result.InsertedCount)
	assert.Equal(t, 1, result.RejectedCount)
	client.AssertExpectations(t)
}

func TestHandleImport_MultipartWithoutFile(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no file"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/imports/hurdle", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(auth.HeaderUserID, "7")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListEntities(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/imports", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	entities := decode[[]Entity](t, resp)
	require.Len(t, entities, 5)
	assert.Equal(t, "employee", entities[0].Name)
	assert.Equal(t, "Employee Number", entities[0].Columns[0].Label)
	assert.True(t, entities[0].Columns[0].Required)
}

func archivesRequest(entity, userID string) *http.Request {
	req := httptest.NewRequest("GET", "/imports/"+entity+"/archives", nil)
	if userID != "" {
		req.Header.Set(auth.HeaderUserID, userID)
	}
	return req
}

func TestHandleListArchives(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "store-ops", mock.Anything).
		Return(mocks.Objects(minio.ObjectInfo{Key: "imports/budget/r1/budget.xlsx", Size: 42}))

	t.Run("Enabled", func(t *testing.T) {
		perms := new(mockPermissions)
		perms.On("CheckPermission", mock.Anything, uint(7), "sales_budgets", ViewAction, uint(0)).Return(true, nil)

		resp, err := setupTestApp(t, perms, client).Test(archivesRequest("sales_budgets", "7"))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decode[[]map[string]any](t, resp)
		require.Len(t, body, 1)
		assert.Equal(t, "imports/budget/r1/budget.xlsx", body[0]["key"])
		perms.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp, err := setupTestApp(t, nil, client).Test(archivesRequest("budget", ""))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Forbidden", func(t *testing.T) {
		perms := new(mockPermissions)
		perms.On("CheckPermission", mock.Anything, uint(8), "employees", ViewAction, uint(0)).Return(false, nil)

		resp, err := setupTestApp(t, perms, client).Test(archivesRequest("employee", "8"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, "store-ops", minio.ListObjectsOptions{Prefix: "imports/employee/", Recursive: true})
	})

	t.Run("Disabled", func(t *testing.T) {
		resp, err := setupTestApp(t, nil, nil).Test(archivesRequest("budget", "7"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestFeature_DisabledWithoutEngine(t *testing.T) {
	feature := NewFeature(nil, DefaultRegistry(), nil, nil, zap.NewNop())
	assert.Equal(t, "imports", feature.Name())
	assert.False(t, feature.IsEnabled())
}
