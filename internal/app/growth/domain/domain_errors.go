package domain

import "errors"

// Domain errors as sentinel values
var (
	// Input validation errors
	ErrEmptyInput          = errors.New("input has no header row")
	ErrMissingColumn       = errors.New("required column is missing")
	ErrInvalidDate         = errors.New("week commencing date cannot be parsed")
	ErrInvalidNumber       = errors.New("value is not a valid number")
	ErrNegativeValue       = errors.New("sales values cannot be negative")
	ErrUnknownPeriodMarker = errors.New("unrecognised period marker")
	ErrKeyArity            = errors.New("record key count does not match entity identifiers")

	// Configuration errors
	ErrUnknownEntity    = errors.New("unknown entity type")
	ErrUnknownDateOrder = errors.New("unknown date order")
	ErrUnknownAlignment = errors.New("unknown alignment mode")

	// Report errors
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyReportID  = errors.New("report id cannot be empty")
	ErrMissingSource  = errors.New("product and brand sources are required")
)
