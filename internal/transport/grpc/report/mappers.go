package report

import (
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/contracts"
)

// FormatTimestamp renders t in the protobuf JSON form of a Timestamp.
func FormatTimestamp(t time.Time) string {
	b, err := protojson.Marshal(timestamppb.New(t))
	if err != nil {
		return t.UTC().Format(time.RFC3339Nano)
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return s
}

// ParseTimestamp reads a timestamp written by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	ts := &timestamppb.Timestamp{}
	if err := protojson.Unmarshal([]byte(strconv.Quote(s)), ts); err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return ts.AsTime(), nil
}

// summaryToMap converts a ReportSummaryDTO to a Struct-compatible map.
func summaryToMap(dto *contracts.ReportSummaryDTO) map[string]interface{} {
	m := map[string]interface{}{
		FieldReportID:    dto.ReportID,
		"product_rows":   dto.ProductRows,
		"brand_rows":     dto.BrandRows,
		"product_source": dto.ProductSource,
		"brand_source":   dto.BrandSource,
		"generated_at":   FormatTimestamp(dto.GeneratedAt),
		"first_week":     nil,
		"last_week":      nil,
	}
	if !dto.CreatedAt.IsZero() {
		m["created_at"] = FormatTimestamp(dto.CreatedAt)
	}
	if dto.FirstWeek != nil {
		m["first_week"] = dto.FirstWeek.Format(time.DateOnly)
	}
	if dto.LastWeek != nil {
		m["last_week"] = dto.LastWeek.Format(time.DateOnly)
	}
	return m
}

// reportToStruct converts a ReportDTO to a Struct carrying the summary fields
// and the document as a JSON string.
func reportToStruct(dto *contracts.ReportDTO) (*structpb.Struct, error) {
	m := summaryToMap(&dto.ReportSummaryDTO)
	m["document"] = dto.Document
	return structpb.NewStruct(m)
}

// listToStruct converts a ListResult to a Struct.
func listToStruct(result *contracts.ListResult) (*structpb.Struct, error) {
	reports := make([]interface{}, 0, len(result.Reports))
	for _, dto := range result.Reports {
		reports = append(reports, summaryToMap(dto))
	}
	return structpb.NewStruct(map[string]interface{}{
		"reports":     reports,
		"total_count": result.TotalCount,
	})
}
