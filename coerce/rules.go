package coerce

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
)

var integerKinds = []common.Kind{common.KindInt16, common.KindInt32, common.KindInt64}

var allKinds = []common.Kind{
	common.KindInt16, common.KindInt32, common.KindInt64, common.KindFloat64, common.KindDecimal,
	common.KindBoolean, common.KindText, common.KindDateTime, common.KindGUID, common.KindBytes,
}

type integerTarget struct {
	kind common.Kind
	bits int
	box  func(int64) interface{}
}

func (it integerTarget) min() int64 {
	return -1 << (it.bits - 1)
}

func (it integerTarget) max() int64 {
	return -(it.min() + 1)
}

var integerTargets = []integerTarget{
	{kind: common.KindInt16, bits: 16, box: func(i int64) interface{} { return int16(i) }},
	{kind: common.KindInt32, bits: 32, box: func(i int64) interface{} { return int32(i) }},
	{kind: common.KindInt64, bits: 64, box: func(i int64) interface{} { return i }},
}

func buildDefaultTable() *Table {
	t := NewTable()
	for _, target := range integerTargets {
		registerIntegerTarget(t, target)
	}
	registerFloatTarget(t)
	registerDecimalTarget(t)
	registerBooleanTarget(t)
	for _, src := range allKinds {
		t.register(src, common.KindText, toText)
	}
	registerDateTimeTarget(t)
	registerGUIDTarget(t)
	registerBytesTarget(t)
	return t
}

func registerIntegerTarget(t *Table, target integerTarget) {
	lo, hi := target.min(), target.max()
	for _, src := range integerKinds {
		t.register(src, target.kind, func(value interface{}) (interface{}, error) {
			i, ok := integerValue(value)
			if !ok || i < lo || i > hi {
				return nil, outOfRange(value, target.kind)
			}
			return target.box(i), nil
		})
	}
	t.register(common.KindFloat64, target.kind, func(value interface{}) (interface{}, error) {
		r := math.RoundToEven(floatValue(value))
		// -lo is 2^(bits-1), exactly representable, unlike hi
		if math.IsNaN(r) || r < float64(lo) || r >= -float64(lo) {
			return nil, outOfRange(value, target.kind)
		}
		return target.box(int64(r)), nil
	})
	t.register(common.KindDecimal, target.kind, func(value interface{}) (interface{}, error) {
		d, err := decimalValue(value, target.kind)
		if err != nil {
			return nil, err
		}
		r := d.RoundBank(0)
		if r.LessThan(decimal.NewFromInt(lo)) || r.GreaterThan(decimal.NewFromInt(hi)) {
			return nil, outOfRange(value, target.kind)
		}
		return target.box(r.IntPart()), nil
	})
	t.register(common.KindBoolean, target.kind, func(value interface{}) (interface{}, error) {
		if value.(bool) {
			return target.box(1), nil
		}
		return target.box(0), nil
	})
	t.register(common.KindText, target.kind, func(value interface{}) (interface{}, error) {
		i, err := strconv.ParseInt(strings.TrimSpace(value.(string)), 10, target.bits)
		if err != nil {
			return nil, errors.NewInvalidCoercionError(quote(value), target.kind.String(), "not a valid integer")
		}
		return target.box(i), nil
	})
}

func registerFloatTarget(t *Table) {
	for _, src := range integerKinds {
		t.register(src, common.KindFloat64, func(value interface{}) (interface{}, error) {
			i, ok := integerValue(value)
			if !ok {
				return nil, outOfRange(value, common.KindFloat64)
			}
			return float64(i), nil
		})
	}
	t.register(common.KindFloat64, common.KindFloat64, func(value interface{}) (interface{}, error) {
		return floatValue(value), nil
	})
	t.register(common.KindDecimal, common.KindFloat64, func(value interface{}) (interface{}, error) {
		d, err := decimalValue(value, common.KindFloat64)
		if err != nil {
			return nil, err
		}
		f := d.InexactFloat64()
		if math.IsInf(f, 0) {
			return nil, outOfRange(value, common.KindFloat64)
		}
		return f, nil
	})
	t.register(common.KindBoolean, common.KindFloat64, func(value interface{}) (interface{}, error) {
		if value.(bool) {
			return float64(1), nil
		}
		return float64(0), nil
	})
	t.register(common.KindText, common.KindFloat64, func(value interface{}) (interface{}, error) {
		f, ok := parseFloat(strings.TrimSpace(value.(string)))
		if !ok {
			return nil, errors.NewInvalidCoercionError(quote(value), common.KindFloat64.String(), "not a valid number")
		}
		return f, nil
	})
}

func registerDecimalTarget(t *Table) {
	for _, src := range integerKinds {
		t.register(src, common.KindDecimal, func(value interface{}) (interface{}, error) {
			i, ok := integerValue(value)
			if !ok {
				return nil, outOfRange(value, common.KindDecimal)
			}
			return decimal.NewFromInt(i), nil
		})
	}
	t.register(common.KindFloat64, common.KindDecimal, func(value interface{}) (interface{}, error) {
		f := floatValue(value)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, outOfRange(value, common.KindDecimal)
		}
		return checkDecimal(decimal.NewFromFloat(f), value)
	})
	t.register(common.KindDecimal, common.KindDecimal, func(value interface{}) (interface{}, error) {
		d, err := decimalValue(value, common.KindDecimal)
		if err != nil {
			return nil, err
		}
		return checkDecimal(d, value)
	})
	t.register(common.KindBoolean, common.KindDecimal, func(value interface{}) (interface{}, error) {
		if value.(bool) {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	})
	t.register(common.KindText, common.KindDecimal, func(value interface{}) (interface{}, error) {
		d, err := decimal.NewFromString(strings.TrimSpace(value.(string)))
		if err != nil {
			return nil, errors.NewInvalidCoercionError(quote(value), common.KindDecimal.String(), "not a valid number")
		}
		return checkDecimal(d, value)
	})
}

func registerBooleanTarget(t *Table) {
	for _, src := range integerKinds {
		t.register(src, common.KindBoolean, func(value interface{}) (interface{}, error) {
			i, ok := integerValue(value)
			// Anything too large for an int64 is still non-zero
			return !ok || i != 0, nil
		})
	}
	t.register(common.KindFloat64, common.KindBoolean, func(value interface{}) (interface{}, error) {
		return floatValue(value) != 0, nil
	})
	t.register(common.KindDecimal, common.KindBoolean, func(value interface{}) (interface{}, error) {
		d, err := decimalValue(value, common.KindBoolean)
		if err != nil {
			return nil, err
		}
		return !d.IsZero(), nil
	})
	t.register(common.KindBoolean, common.KindBoolean, func(value interface{}) (interface{}, error) {
		return value, nil
	})
	t.register(common.KindText, common.KindBoolean, func(value interface{}) (interface{}, error) {
		s := strings.TrimSpace(value.(string))
		switch {
		case strings.EqualFold(s, "true"):
			return true, nil
		case strings.EqualFold(s, "false"):
			return false, nil
		}
		return nil, errors.NewInvalidCoercionError(quote(value), common.KindBoolean.String(), "not a valid boolean")
	})
}

func registerDateTimeTarget(t *Table) {
	t.register(common.KindDateTime, common.KindDateTime, func(value interface{}) (interface{}, error) {
		tm := value.(time.Time)
		if !common.DateTimeInRange(tm) {
			return nil, outOfRange(value, common.KindDateTime)
		}
		return tm, nil
	})
	t.register(common.KindText, common.KindDateTime, func(value interface{}) (interface{}, error) {
		tm, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value.(string)))
		if err != nil {
			return nil, errors.NewInvalidCoercionError(quote(value), common.KindDateTime.String(), "not an RFC 3339 timestamp")
		}
		if !common.DateTimeInRange(tm) {
			return nil, outOfRange(value, common.KindDateTime)
		}
		return tm, nil
	})
}

func registerGUIDTarget(t *Table) {
	t.register(common.KindGUID, common.KindGUID, func(value interface{}) (interface{}, error) {
		switch v := value.(type) {
		case uuid.UUID:
			return v, nil
		case [16]byte:
			return uuid.UUID(v), nil
		}
		return nil, errors.NewInvalidCoercionError(fmt.Sprintf("%T", value), common.KindGUID.String(), "")
	})
	t.register(common.KindBytes, common.KindGUID, func(value interface{}) (interface{}, error) {
		u, err := uuid.FromBytes(value.([]byte))
		if err != nil {
			return nil, errors.NewInvalidCoercionError("[]byte", common.KindGUID.String(), "need exactly 16 bytes")
		}
		return u, nil
	})
	t.register(common.KindText, common.KindGUID, func(value interface{}) (interface{}, error) {
		u, err := uuid.Parse(strings.TrimSpace(value.(string)))
		if err != nil {
			return nil, errors.NewInvalidCoercionError(quote(value), common.KindGUID.String(), "not a valid GUID")
		}
		return u, nil
	})
}

func registerBytesTarget(t *Table) {
	t.register(common.KindBytes, common.KindBytes, func(value interface{}) (interface{}, error) {
		return common.CopyByteSlice(value.([]byte)), nil
	})
	t.register(common.KindGUID, common.KindBytes, func(value interface{}) (interface{}, error) {
		var u uuid.UUID
		switch v := value.(type) {
		case uuid.UUID:
			u = v
		case [16]byte:
			u = uuid.UUID(v)
		}
		return common.CopyByteSlice(u[:]), nil
	})
	t.register(common.KindText, common.KindBytes, func(value interface{}) (interface{}, error) {
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value.(string)))
		if err != nil {
			return nil, errors.NewInvalidCoercionError(quote(value), common.KindBytes.String(), "not valid base64")
		}
		return b, nil
	})
}

func toText(value interface{}) (interface{}, error) {
	s, err := FormatText(value)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// integerValue widens any Go integer to int64. ok is false for unsigned values above math.MaxInt64.
func integerValue(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	panic(fmt.Sprintf("not an integer %T", value))
}

func floatValue(value interface{}) float64 {
	switch v := value.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	}
	panic(fmt.Sprintf("not a float %T", value))
}

func decimalValue(value interface{}, dst common.Kind) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v != nil {
			return *v, nil
		}
	}
	return decimal.Zero, errors.NewInvalidCoercionError(fmt.Sprintf("%T", value), dst.String(), "nil decimal")
}

func checkDecimal(d decimal.Decimal, original interface{}) (interface{}, error) {
	if !common.DecimalInRange(d) {
		return nil, outOfRange(original, common.KindDecimal)
	}
	return d, nil
}

func outOfRange(value interface{}, kind common.Kind) error {
	return errors.NewInvalidCoercionError(fmt.Sprintf("%T %v", value, value), kind.String(), "value out of range")
}

func quote(value interface{}) string {
	return strconv.Quote(value.(string))
}
