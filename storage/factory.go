package storage

import (
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// New creates an empty storage for a column type. A non-empty collation on a Text column is parsed as a BCP 47
// language tag and used to order the column's values.
func New(columnType common.ColumnType, opts ...Option) (Storage, error) {
	if _, ok := common.ColumnTypesByKind[columnType.Kind]; !ok {
		return nil, errors.NewUnknownKindError(columnType.Kind.String())
	}
	if columnType.Collation != "" {
		if columnType.Kind != common.KindText {
			return nil, errors.NewStoreErrorf(errors.InvalidConfiguration, "collation %q is only valid on a %s column", columnType.Collation, common.KindText)
		}
		tag, err := language.Parse(columnType.Collation)
		if err != nil {
			return nil, errors.NewStoreErrorf(errors.InvalidConfiguration, "invalid collation %q", columnType.Collation)
		}
		opts = append(opts, WithCollator(collate.New(tag)))
	}
	switch columnType.Kind {
	case common.KindInt16:
		return NewInt16Storage(opts...), nil
	case common.KindInt32:
		return NewInt32Storage(opts...), nil
	case common.KindInt64:
		return NewInt64Storage(opts...), nil
	case common.KindFloat64:
		return NewFloat64Storage(opts...), nil
	case common.KindDecimal:
		return NewDecimalStorage(opts...), nil
	case common.KindBoolean:
		return NewBooleanStorage(opts...), nil
	case common.KindText:
		return NewTextStorage(opts...), nil
	case common.KindDateTime:
		return NewDateTimeStorage(opts...), nil
	case common.KindGUID:
		return NewGUIDStorage(opts...), nil
	case common.KindBytes:
		return NewBytesStorage(opts...), nil
	default:
		return nil, errors.NewUnknownKindError(columnType.Kind.String())
	}
}
