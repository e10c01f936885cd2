package report

import (
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
)

// Request field names.
const (
	FieldProductURI = "product_uri"
	FieldBrandURI   = "brand_uri"
	FieldOutputURI  = "output_uri"
	FieldReportID   = "report_id"
	FieldPersist    = "persist"
	FieldCoversWeek = "covers_week"
	FieldPageSize   = "page_size"
)

// validateGenerateReportRequest validates the GenerateReport request.
func validateGenerateReportRequest(req *structpb.Struct) error {
	if stringField(req, FieldProductURI) == "" {
		return status.Error(codes.InvalidArgument, "product_uri is required")
	}
	if stringField(req, FieldBrandURI) == "" {
		return status.Error(codes.InvalidArgument, "brand_uri is required")
	}
	for _, field := range []string{FieldProductURI, FieldBrandURI, FieldOutputURI} {
		if err := validateObjectURI(field, stringField(req, field)); err != nil {
			return err
		}
	}
	return nil
}

// validateObjectURI accepts s3:// URIs and paths relative to the server's data
// root. Absolute paths and paths climbing out with ".." are refused before any
// file is touched.
func validateObjectURI(field, uri string) error {
	if uri == "" || blob.IsS3(uri) {
		return nil
	}
	if _, err := blob.RelativePath(uri); err != nil {
		return status.Error(codes.InvalidArgument,
			fmt.Sprintf("%s must be an s3:// uri or a path relative to the data root", field))
	}
	return nil
}

// validateListReportsRequest validates the ListReports request and returns
// the parsed covers_week filter, if any.
func validateListReportsRequest(req *structpb.Struct) (*time.Time, error) {
	if size := numberField(req, FieldPageSize); size < 0 {
		return nil, status.Error(codes.InvalidArgument, "page_size cannot be negative")
	}
	raw := stringField(req, FieldCoversWeek)
	if raw == "" {
		return nil, nil
	}
	week, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "covers_week must be YYYY-MM-DD")
	}
	return &week, nil
}

func stringField(s *structpb.Struct, name string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[name].GetStringValue()
}

func numberField(s *structpb.Struct, name string) float64 {
	if s == nil {
		return 0
	}
	return s.GetFields()[name].GetNumberValue()
}

func boolField(s *structpb.Struct, name string) bool {
	if s == nil {
		return false
	}
	return s.GetFields()[name].GetBoolValue()
}
