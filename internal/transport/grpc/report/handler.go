package report

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/queries/get_report"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/queries/list_reports"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/generate_report"
	"github.com/light-bringer/salesgrowth-service/internal/app/growth/usecases/save_report"
)

// Handler implements ReportServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	generateReport *generate_report.Interactor
	saveReport     *save_report.Interactor // nil: persist requests are rejected

	// Queries
	getReport   *get_report.Query
	listReports *list_reports.Query
}

// NewHandler creates a new gRPC report handler.
func NewHandler(
	generateReport *generate_report.Interactor,
	saveReport *save_report.Interactor,
	getReport *get_report.Query,
	listReports *list_reports.Query,
) *Handler {
	return &Handler{
		generateReport: generateReport,
		saveReport:     saveReport,
		getReport:      getReport,
		listReports:    listReports,
	}
}

// GenerateReport runs both pipelines and returns the combined document.
func (h *Handler) GenerateReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateGenerateReportRequest(req); err != nil {
		return nil, err
	}
	persist := boolField(req, FieldPersist)
	if persist && h.saveReport == nil {
		return nil, status.Error(codes.FailedPrecondition, "report persistence is not configured")
	}

	report, err := h.generateReport.Execute(ctx, &generate_report.Request{
		ProductURI: stringField(req, FieldProductURI),
		BrandURI:   stringField(req, FieldBrandURI),
		OutputURI:  stringField(req, FieldOutputURI),
		ReportID:   stringField(req, FieldReportID),
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	if persist {
		if err := h.saveReport.Execute(ctx, report); err != nil {
			return nil, mapDomainErrorToGRPC(err)
		}
	}

	dto, err := reportToDTO(report)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode report")
	}
	return reportToStruct(dto)
}

// GetReport retrieves a stored report by ID.
func (h *Handler) GetReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reportID := stringField(req, FieldReportID)
	if reportID == "" {
		return nil, status.Error(codes.InvalidArgument, "report_id is required")
	}

	dto, err := h.getReport.Execute(ctx, &get_report.Request{ReportID: reportID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return reportToStruct(dto)
}

// ListReports retrieves stored report summaries, newest first.
func (h *Handler) ListReports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	coversWeek, err := validateListReportsRequest(req)
	if err != nil {
		return nil, err
	}

	result, err := h.listReports.Execute(ctx, &contracts.ListFilter{
		CoversWeek: coversWeek,
		PageSize:   int(numberField(req, FieldPageSize)),
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return listToStruct(result)
}

func reportToDTO(report *domain.Report) (*contracts.ReportDTO, error) {
	doc, err := report.Document().Encode("")
	if err != nil {
		return nil, err
	}

	dto := &contracts.ReportDTO{
		ReportSummaryDTO: contracts.ReportSummaryDTO{
			ReportID:      report.ID(),
			ProductRows:   int64(report.ProductRows()),
			BrandRows:     int64(report.BrandRows()),
			ProductSource: report.Sources().ProductURI,
			BrandSource:   report.Sources().BrandURI,
			GeneratedAt:   report.GeneratedAt(),
		},
		Document: string(doc),
	}
	if first, last := report.WeekRange(); !first.IsZero() {
		dto.FirstWeek, dto.LastWeek = &first, &last
	}
	return dto, nil
}
