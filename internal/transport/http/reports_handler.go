package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/salesgrowth-service/internal/transport/grpc/report"
)

// ReportService is the subset of the gRPC report client the HTTP edge uses.
type ReportService interface {
	GenerateReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListReports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// ReportsHandler handles HTTP requests for growth reports by forwarding them
// to the gRPC report service.
type ReportsHandler struct {
	reportService ReportService
}

// NewReportsHandler creates a new HTTP reports handler.
func NewReportsHandler(reportService ReportService) *ReportsHandler {
	return &ReportsHandler{
		reportService: reportService,
	}
}

// Register mounts the report routes on mux.
func (h *ReportsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/reports", h.list)
	mux.HandleFunc("POST /api/v1/reports", h.generate)
	mux.HandleFunc("GET /api/v1/reports/{id}", h.get)
}

// GenerateRequest is the body of POST /api/v1/reports.
type GenerateRequest struct {
	ProductURI string `json:"product_uri"`
	BrandURI   string `json:"brand_uri"`
	OutputURI  string `json:"output_uri,omitempty"`
	ReportID   string `json:"report_id,omitempty"`
	Persist    bool   `json:"persist,omitempty"`
}

// ReportResponse is a report with its document embedded as JSON.
type ReportResponse struct {
	Report   map[string]interface{} `json:"report"`
	Document json.RawMessage        `json:"document"`
}

// ListReportsResponse represents the HTTP response for listing reports.
type ListReportsResponse struct {
	Reports    []interface{} `json:"reports"`
	TotalCount int64         `json:"total_count"`
}

func (h *ReportsHandler) generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, err := structpb.NewStruct(map[string]interface{}{
		report.FieldProductURI: body.ProductURI,
		report.FieldBrandURI:   body.BrandURI,
		report.FieldOutputURI:  body.OutputURI,
		report.FieldReportID:   body.ReportID,
		report.FieldPersist:    body.Persist,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.reportService.GenerateReport(r.Context(), req)
	if err != nil {
		writeGRPCError(w, err)
		return
	}
	writeReport(w, http.StatusCreated, resp)
}

func (h *ReportsHandler) get(w http.ResponseWriter, r *http.Request) {
	req, _ := structpb.NewStruct(map[string]interface{}{
		report.FieldReportID: r.PathValue("id"),
	})

	resp, err := h.reportService.GetReport(r.Context(), req)
	if err != nil {
		writeGRPCError(w, err)
		return
	}
	writeReport(w, http.StatusOK, resp)
}

func (h *ReportsHandler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fields := map[string]interface{}{}

	if week := query.Get("covers_week"); week != "" {
		fields[report.FieldCoversWeek] = week
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		fields[report.FieldPageSize] = limit
	}

	req, _ := structpb.NewStruct(fields)
	resp, err := h.reportService.ListReports(r.Context(), req)
	if err != nil {
		writeGRPCError(w, err)
		return
	}

	out := ListReportsResponse{
		Reports:    resp.GetFields()["reports"].GetListValue().AsSlice(),
		TotalCount: int64(resp.GetFields()["total_count"].GetNumberValue()),
	}
	if out.Reports == nil {
		out.Reports = []interface{}{}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeReport(w http.ResponseWriter, code int, resp *structpb.Struct) {
	fields := resp.AsMap()
	doc, _ := fields["document"].(string)
	delete(fields, "document")
	if doc == "" {
		doc = "null"
	}

	writeJSON(w, code, ReportResponse{
		Report:   fields,
		Document: json.RawMessage(doc),
	})
}

// httpStatus maps a gRPC status code to the HTTP status returned to callers.
func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeGRPCError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeError(w, httpStatus(st.Code()), st.Message())
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
