package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityType names the grouping a sales file is reported under. The value is
// also the top-level key of the combined report document.
type EntityType string

const (
	EntityProduct EntityType = "PRODUCT"
	EntityBrand   EntityType = "BRAND"
)

// ColumnType is the declared type of an input column.
type ColumnType int

const (
	ColumnString ColumnType = iota
	ColumnInt32
	ColumnFloat64
)

// TypeSchema maps column names to their declared types. It is built once per
// entity and never mutated afterwards; columns it does not list are strings.
type TypeSchema struct {
	types map[string]ColumnType
}

// NewTypeSchema copies types into a new schema.
func NewTypeSchema(types map[string]ColumnType) TypeSchema {
	copied := make(map[string]ColumnType, len(types))
	for col, typ := range types {
		copied[col] = typ
	}
	return TypeSchema{types: copied}
}

// TypeOf returns the declared type of column.
func (s TypeSchema) TypeOf(column string) ColumnType {
	if typ, ok := s.types[column]; ok {
		return typ
	}
	return ColumnString
}

// baseSchema lists the columns every entity file shares.
var baseSchema = map[string]ColumnType{
	"period_id":        ColumnInt32,
	"gross_sales":      ColumnFloat64,
	"units_sold":       ColumnInt32,
	"prev_gross_sales": ColumnFloat64,
	"prev_units_sold":  ColumnInt32,
}

// EntityConfig carries everything that differs between the product and the
// brand pipelines: which columns identify a row, how they are displayed, and
// which one the output is sorted by.
type EntityConfig struct {
	name              EntityType
	identifierColumns []string
	displayRenames    map[string]string
	sortColumn        string
	schema            TypeSchema
}

// NewEntityConfig validates and builds an EntityConfig. sortColumn must be one
// of identifierColumns.
func NewEntityConfig(name EntityType, identifierColumns []string, displayRenames map[string]string, sortColumn string, extraTypes map[string]ColumnType) (EntityConfig, error) {
	if len(identifierColumns) == 0 {
		return EntityConfig{}, fmt.Errorf("entity %s: at least one identifier column is required", name)
	}

	sortFound := false
	for _, col := range identifierColumns {
		if col == sortColumn {
			sortFound = true
		}
	}
	if !sortFound {
		return EntityConfig{}, fmt.Errorf("entity %s: sort column %q is not an identifier column", name, sortColumn)
	}

	types := make(map[string]ColumnType, len(baseSchema)+len(extraTypes))
	for col, typ := range baseSchema {
		types[col] = typ
	}
	for col, typ := range extraTypes {
		types[col] = typ
	}

	renames := make(map[string]string, len(displayRenames))
	for from, to := range displayRenames {
		renames[from] = to
	}

	return EntityConfig{
		name:              name,
		identifierColumns: append([]string(nil), identifierColumns...),
		displayRenames:    renames,
		sortColumn:        sortColumn,
		schema:            NewTypeSchema(types),
	}, nil
}

// ProductEntity returns the configuration for per-product sales files.
func ProductEntity() EntityConfig {
	cfg, _ := NewEntityConfig(
		EntityProduct,
		[]string{"barcode_no", "product_name"},
		nil,
		"product_name",
		map[string]ColumnType{"barcode_no": ColumnString},
	)
	return cfg
}

// BrandEntity returns the configuration for per-brand sales files. The raw
// "brand" column is published as "brand_name".
func BrandEntity() EntityConfig {
	cfg, _ := NewEntityConfig(
		EntityBrand,
		[]string{"brand_id", "brand"},
		map[string]string{"brand": "brand_name"},
		"brand",
		map[string]ColumnType{"brand_id": ColumnInt32},
	)
	return cfg
}

// EntityByName resolves PRODUCT or BRAND (case-insensitive).
func EntityByName(name string) (EntityConfig, error) {
	switch EntityType(strings.ToUpper(strings.TrimSpace(name))) {
	case EntityProduct:
		return ProductEntity(), nil
	case EntityBrand:
		return BrandEntity(), nil
	default:
		return EntityConfig{}, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
}

// Name returns the entity type.
func (e EntityConfig) Name() EntityType {
	return e.name
}

// IdentifierColumns returns a copy of the raw identifier column names, in key order.
func (e EntityConfig) IdentifierColumns() []string {
	return append([]string(nil), e.identifierColumns...)
}

// DisplayName returns the output name of a raw identifier column.
func (e EntityConfig) DisplayName(column string) string {
	if renamed, ok := e.displayRenames[column]; ok {
		return renamed
	}
	return column
}

// SortColumn returns the raw identifier column the output is ordered by.
func (e EntityConfig) SortColumn() string {
	return e.sortColumn
}

// SortKeyIndex returns the position of the sort column within record keys.
func (e EntityConfig) SortKeyIndex() int {
	for i, col := range e.identifierColumns {
		if col == e.sortColumn {
			return i
		}
	}
	return 0
}

// Schema returns the entity's type schema.
func (e EntityConfig) Schema() TypeSchema {
	return e.schema
}

// NormalizeIdentifier converts a raw identifier cell into its canonical key
// form according to the schema, so that "007" and "7" join as the same brand id.
func (e EntityConfig) NormalizeIdentifier(column, raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	switch e.schema.TypeOf(column) {
	case ColumnInt32:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return "", fmt.Errorf("%w: column %s value %q", ErrInvalidNumber, column, raw)
		}
		return strconv.FormatInt(v, 10), nil
	case ColumnFloat64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("%w: column %s value %q", ErrInvalidNumber, column, raw)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return raw, nil
	}
}

// TypedIdentifier returns the JSON-facing value of a canonical identifier key.
func (e EntityConfig) TypedIdentifier(column, key string) interface{} {
	switch e.schema.TypeOf(column) {
	case ColumnInt32:
		if v, err := strconv.ParseInt(key, 10, 32); err == nil {
			return int32(v)
		}
	case ColumnFloat64:
		if v, err := strconv.ParseFloat(key, 64); err == nil {
			return v
		}
	}
	return key
}
