package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeReportService struct {
	lastRequest *structpb.Struct
	err         error
}

func (f *fakeReportService) GenerateReport(_ context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastRequest = in
	if f.err != nil {
		return nil, f.err
	}
	return structpb.NewStruct(map[string]interface{}{
		"report_id": "generated",
		"document":  `{"PRODUCT":[],"BRAND":[]}`,
	})
}

func (f *fakeReportService) GetReport(_ context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastRequest = in
	if in.GetFields()["report_id"].GetStringValue() != "r-1" {
		return nil, status.Error(codes.NotFound, "report not found")
	}
	return structpb.NewStruct(map[string]interface{}{
		"report_id":    "r-1",
		"product_rows": 2,
		"document":     `{"PRODUCT":[{"barcode_no":"1","product_name":"M&S <Ltd>"}],"BRAND":[]}`,
	})
}

func (f *fakeReportService) ListReports(_ context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastRequest = in
	return structpb.NewStruct(map[string]interface{}{
		"reports":     []interface{}{map[string]interface{}{"report_id": "r-1"}},
		"total_count": 1,
	})
}

func newServer(svc ReportService) *http.ServeMux {
	mux := http.NewServeMux()
	NewReportsHandler(svc).Register(mux)
	return mux
}

func TestReportsHandler_Get(t *testing.T) {
	mux := newServer(&fakeReportService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/r-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"report": {"report_id": "r-1", "product_rows": 2},
		"document": {"PRODUCT": [{"barcode_no": "1", "product_name": "M&S <Ltd>"}], "BRAND": []}
	}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"product_name":"M&S <Ltd>"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "report not found"}`, rec.Body.String())
}

func TestReportsHandler_List(t *testing.T) {
	svc := &fakeReportService{}
	mux := newServer(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?covers_week=2024-07-01&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ListReportsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Len(t, resp.Reports, 1)
	assert.Equal(t, "2024-07-01", svc.lastRequest.GetFields()["covers_week"].GetStringValue())
	assert.Equal(t, float64(10), svc.lastRequest.GetFields()["page_size"].GetNumberValue())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportsHandler_Generate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeReportService{}
		rec := httptest.NewRecorder()
		body := `{"product_uri": "s3://sales/product.csv", "brand_uri": "s3://sales/brand.csv", "persist": true}`
		newServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"report": {"report_id": "generated"}, "document": {"PRODUCT": [], "BRAND": []}}`, rec.Body.String())
		assert.Equal(t, "s3://sales/product.csv", svc.lastRequest.GetFields()["product_uri"].GetStringValue())
		assert.True(t, svc.lastRequest.GetFields()["persist"].GetBoolValue())
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newServer(&fakeReportService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader("{")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service errors map to http", func(t *testing.T) {
		svc := &fakeReportService{err: status.Error(codes.InvalidArgument, "row 3: sales values cannot be negative")}
		rec := httptest.NewRecorder()
		newServer(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 3")
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newServer(&fakeReportService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/reports", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, httpStatus(codes.FailedPrecondition))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(codes.Unavailable))
	assert.Equal(t, http.StatusInternalServerError, httpStatus(codes.Internal))
}
