package report

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/salesgrowth-service/internal/app/growth/domain"
	"github.com/light-bringer/salesgrowth-service/internal/pkg/blob"
)

// inputErrors are reported back to the caller verbatim, since their messages
// carry the offending row and column.
var inputErrors = []error{
	domain.ErrEmptyInput,
	domain.ErrMissingColumn,
	domain.ErrInvalidDate,
	domain.ErrInvalidNumber,
	domain.ErrNegativeValue,
	domain.ErrUnknownPeriodMarker,
	domain.ErrKeyArity,
	blob.ErrInvalidURI,
}

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}

	switch {
	case errors.Is(err, domain.ErrMissingSource):
		return status.Error(codes.InvalidArgument, "product_uri and brand_uri are required")

	case errors.Is(err, domain.ErrEmptyReportID):
		return status.Error(codes.InvalidArgument, "report_id is required")

	case errors.Is(err, domain.ErrReportNotFound):
		return status.Error(codes.NotFound, "report not found")

	case errors.Is(err, blob.ErrNotFound):
		return status.Error(codes.NotFound, "source file not found")

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
