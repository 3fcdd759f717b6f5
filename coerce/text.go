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

// The canonical text encoding is locale independent and round trips exactly:
//
//	integers   base 10, optional leading sign
//	floats     shortest representation that parses back to the same bits, INF, -INF and NaN
//	decimals   fixed notation without trailing zeros
//	booleans   true, false (1 and 0 are accepted on input)
//	date/time  RFC 3339 with nanoseconds
//	GUIDs      8-4-4-4-12 lower case hex
//	bytes      standard base64
const (
	textPositiveInfinity = "INF"
	textNegativeInfinity = "-INF"
	textNaN              = "NaN"
)

// FormatText encodes a single value in its canonical text form.
func FormatText(value interface{}) (string, error) {
	switch v := value.(type) {
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case float32:
		return formatFloat(float64(v), 32), nil
	case float64:
		return formatFloat(v, 64), nil
	case decimal.Decimal:
		return v.String(), nil
	case *decimal.Decimal:
		if v == nil {
			return "", errors.NewInvalidCoercionError("nil *decimal.Decimal", common.KindText.String(), "")
		}
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return v, nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case uuid.UUID:
		return v.String(), nil
	case [16]byte:
		return uuid.UUID(v).String(), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(v), nil
	default:
		return "", errors.NewInvalidCoercionError(fmt.Sprintf("%T", value), common.KindText.String(), "")
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return textNaN
	case math.IsInf(f, 1):
		return textPositiveInfinity
	case math.IsInf(f, -1):
		return textNegativeInfinity
	default:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
}

// ParseText decodes the canonical text form of a value of the given kind into its native Go type.
func ParseText(kind common.Kind, text string) (interface{}, error) {
	trimmed := strings.TrimSpace(text)
	invalid := func() error {
		return errors.NewInvalidTextFormatError(text, kind.String())
	}
	switch kind {
	case common.KindInt16:
		i, err := strconv.ParseInt(trimmed, 10, 16)
		if err != nil {
			return nil, invalid()
		}
		return int16(i), nil
	case common.KindInt32:
		i, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, invalid()
		}
		return int32(i), nil
	case common.KindInt64:
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, invalid()
		}
		return i, nil
	case common.KindFloat64:
		f, ok := parseFloat(trimmed)
		if !ok {
			return nil, invalid()
		}
		return f, nil
	case common.KindDecimal:
		d, err := decimal.NewFromString(trimmed)
		if err != nil || !common.DecimalInRange(d) {
			return nil, invalid()
		}
		return d, nil
	case common.KindBoolean:
		switch trimmed {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, invalid()
	case common.KindText:
		return text, nil
	case common.KindDateTime:
		t, err := time.Parse(time.RFC3339Nano, trimmed)
		if err != nil || !common.DateTimeInRange(t) {
			return nil, invalid()
		}
		return t, nil
	case common.KindGUID:
		u, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, invalid()
		}
		return u, nil
	case common.KindBytes:
		b, err := base64.StdEncoding.DecodeString(trimmed)
		if err != nil {
			return nil, invalid()
		}
		return b, nil
	default:
		return nil, errors.NewUnknownKindError(kind.String())
	}
}

func parseFloat(s string) (float64, bool) {
	switch s {
	case textPositiveInfinity:
		return math.Inf(1), true
	case textNegativeInfinity:
		return math.Inf(-1), true
	case textNaN:
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat also accepts "inf", "infinity" and "nan" in any case, only the canonical tokens are valid here
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
