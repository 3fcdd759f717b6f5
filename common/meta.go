package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/squareup/colstore/errors"
)

// Kind is a concrete primitive value domain. Each kind has its own storage, arithmetic, ordering and text codec.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindDecimal
	KindBoolean
	KindText
	KindDateTime
	KindGUID
	KindBytes
)

var kindNames = map[Kind]string{
	KindUnknown:  "Unknown",
	KindInt16:    "Int16",
	KindInt32:    "Int32",
	KindInt64:    "Int64",
	KindFloat64:  "Float64",
	KindDecimal:  "Decimal",
	KindBoolean:  "Boolean",
	KindText:     "Text",
	KindDateTime: "DateTime",
	KindGUID:     "GUID",
	KindBytes:    "Bytes",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Capture parses the SQL-ish type names used by the command grammar.
func (k *Kind) Capture(tokens []string) error {
	kind, err := ParseKind(strings.Join(tokens, " "))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func ParseKind(text string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "SMALLINT", "INT16":
		return KindInt16, nil
	case "INT", "INTEGER", "INT32":
		return KindInt32, nil
	case "BIGINT", "INT64":
		return KindInt64, nil
	case "DOUBLE", "FLOAT64":
		return KindFloat64, nil
	case "DECIMAL":
		return KindDecimal, nil
	case "BOOLEAN", "BOOL":
		return KindBoolean, nil
	case "VARCHAR", "TEXT":
		return KindText, nil
	case "TIMESTAMP", "DATETIME":
		return KindDateTime, nil
	case "UUID", "GUID":
		return KindGUID, nil
	case "VARBINARY", "BYTES":
		return KindBytes, nil
	default:
		return KindUnknown, errors.NewUnknownKindError(text)
	}
}

var (
	Int16ColumnType    = ColumnType{Kind: KindInt16}
	Int32ColumnType    = ColumnType{Kind: KindInt32}
	Int64ColumnType    = ColumnType{Kind: KindInt64}
	Float64ColumnType  = ColumnType{Kind: KindFloat64}
	DecimalColumnType  = ColumnType{Kind: KindDecimal}
	BooleanColumnType  = ColumnType{Kind: KindBoolean}
	TextColumnType     = ColumnType{Kind: KindText}
	DateTimeColumnType = ColumnType{Kind: KindDateTime}
	GUIDColumnType     = ColumnType{Kind: KindGUID}
	BytesColumnType    = ColumnType{Kind: KindBytes}

	// ColumnTypesByKind allows lookup of ColumnType by Kind.
	ColumnTypesByKind = map[Kind]ColumnType{
		KindInt16:    Int16ColumnType,
		KindInt32:    Int32ColumnType,
		KindInt64:    Int64ColumnType,
		KindFloat64:  Float64ColumnType,
		KindDecimal:  DecimalColumnType,
		KindBoolean:  BooleanColumnType,
		KindText:     TextColumnType,
		KindDateTime: DateTimeColumnType,
		KindGUID:     GUIDColumnType,
		KindBytes:    BytesColumnType,
	}
)

// KindOf classifies a Go value into the closed set of source kinds understood by the coercion table.
// Narrow and unsigned integers are widened to the nearest signed kind that can hold them.
func KindOf(value interface{}) (Kind, bool) {
	switch value.(type) {
	case int8, uint8, int16:
		return KindInt16, true
	case uint16, int32:
		return KindInt32, true
	case uint32, int64, int:
		return KindInt64, true
	case uint, uint64:
		// Values that don't fit in an int64 are range checked by the coercion rules
		return KindInt64, true
	case float32, float64:
		return KindFloat64, true
	case decimal.Decimal, *decimal.Decimal:
		return KindDecimal, true
	case bool:
		return KindBoolean, true
	case string:
		return KindText, true
	case time.Time:
		return KindDateTime, true
	case uuid.UUID, [16]byte:
		return KindGUID, true
	case []byte:
		return KindBytes, true
	default:
		return KindUnknown, false
	}
}

// ColumnType describes the values a column holds. Text columns may carry a collation (BCP 47 tag) used for ordering.
type ColumnType struct {
	Kind      Kind
	Collation string
}

func (c ColumnType) String() string {
	if c.Collation != "" {
		return fmt.Sprintf("%s(%s)", c.Kind, c.Collation)
	}
	return c.Kind.String()
}
