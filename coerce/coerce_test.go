package coerce

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
	"github.com/stretchr/testify/require"
)

func convert(t *testing.T, dst common.Kind, value interface{}) interface{} {
	t.Helper()
	res, err := Default().Convert(dst, value)
	require.NoError(t, err)
	return res
}

func requireCoercionError(t *testing.T, dst common.Kind, value interface{}) {
	t.Helper()
	_, err := Default().Convert(dst, value)
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.InvalidCoercion), err.Error())
}

func TestIntegerTargets(t *testing.T) {
	require.Equal(t, int16(-5), convert(t, common.KindInt16, int64(-5)))
	require.Equal(t, int16(math.MaxInt16), convert(t, common.KindInt16, uint16(math.MaxInt16)))
	require.Equal(t, int32(3), convert(t, common.KindInt32, uint8(3)))
	require.Equal(t, int64(math.MaxInt64), convert(t, common.KindInt64, uint64(math.MaxInt64)))
	requireCoercionError(t, common.KindInt16, int32(math.MaxInt16+1))
	requireCoercionError(t, common.KindInt32, int64(math.MinInt32-1))
	requireCoercionError(t, common.KindInt64, uint64(math.MaxInt64)+1)

	// floats round half to even
	require.Equal(t, int32(2), convert(t, common.KindInt32, 2.5))
	require.Equal(t, int32(4), convert(t, common.KindInt32, 3.5))
	require.Equal(t, int32(-2), convert(t, common.KindInt32, -2.5))
	requireCoercionError(t, common.KindInt64, math.NaN())
	requireCoercionError(t, common.KindInt64, 9.3e18)
	requireCoercionError(t, common.KindInt16, 32767.5)
	require.Equal(t, int16(-32768), convert(t, common.KindInt16, -32768.4))

	require.Equal(t, int64(2), convert(t, common.KindInt64, decimal.RequireFromString("2.5")))
	require.Equal(t, int64(1), convert(t, common.KindInt64, true))
	require.Equal(t, int64(-12), convert(t, common.KindInt64, " -12 "))
	requireCoercionError(t, common.KindInt64, "12.0")
	requireCoercionError(t, common.KindInt16, "40000")

	requireCoercionError(t, common.KindInt64, time.Now())
	requireCoercionError(t, common.KindInt64, []byte{1})
}

func TestFloatTarget(t *testing.T) {
	require.Equal(t, float64(7), convert(t, common.KindFloat64, int16(7)))
	require.Equal(t, 0.5, convert(t, common.KindFloat64, float32(0.5)))
	require.Equal(t, 1.25, convert(t, common.KindFloat64, decimal.RequireFromString("1.25")))
	require.Equal(t, math.Inf(-1), convert(t, common.KindFloat64, "-INF"))
	require.Equal(t, 1e300, convert(t, common.KindFloat64, "1e300"))
	requireCoercionError(t, common.KindFloat64, "1e400")
	requireCoercionError(t, common.KindFloat64, "inf")
}

func TestDecimalTarget(t *testing.T) {
	d := convert(t, common.KindDecimal, 0.1).(decimal.Decimal)
	require.Equal(t, "0.1", d.String())
	d = convert(t, common.KindDecimal, int64(math.MinInt64)).(decimal.Decimal)
	require.Equal(t, "-9223372036854775808", d.String())
	d = convert(t, common.KindDecimal, "79228162514264337593543950335").(decimal.Decimal)
	require.True(t, d.Equal(common.MaxDecimal))
	requireCoercionError(t, common.KindDecimal, "79228162514264337593543950336")
	requireCoercionError(t, common.KindDecimal, math.Inf(1))
	requireCoercionError(t, common.KindDecimal, 1e30)
	var nilDec *decimal.Decimal
	requireCoercionError(t, common.KindDecimal, nilDec)
}

func TestBooleanTarget(t *testing.T) {
	require.Equal(t, true, convert(t, common.KindBoolean, 3))
	require.Equal(t, false, convert(t, common.KindBoolean, int16(0)))
	require.Equal(t, true, convert(t, common.KindBoolean, uint64(math.MaxUint64)))
	require.Equal(t, true, convert(t, common.KindBoolean, math.NaN()))
	require.Equal(t, false, convert(t, common.KindBoolean, decimal.Zero))
	require.Equal(t, true, convert(t, common.KindBoolean, "TRUE"))
	require.Equal(t, false, convert(t, common.KindBoolean, "False"))
	requireCoercionError(t, common.KindBoolean, "1")
}

func TestTextTarget(t *testing.T) {
	require.Equal(t, "-3", convert(t, common.KindText, int32(-3)))
	require.Equal(t, "0.1", convert(t, common.KindText, 0.1))
	require.Equal(t, "INF", convert(t, common.KindText, math.Inf(1)))
	require.Equal(t, "true", convert(t, common.KindText, true))
	require.Equal(t, "AQID", convert(t, common.KindText, []byte{1, 2, 3}))
	tm := time.Date(2021, 6, 1, 12, 0, 0, 500, time.UTC)
	require.Equal(t, "2021-06-01T12:00:00.0000005Z", convert(t, common.KindText, tm))
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", convert(t, common.KindText, id))
}

func TestDateTimeGUIDAndBytesTargets(t *testing.T) {
	tm := convert(t, common.KindDateTime, "2021-06-01T12:00:00+02:00").(time.Time)
	require.True(t, tm.Equal(time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)))
	requireCoercionError(t, common.KindDateTime, "2021-06-01")
	requireCoercionError(t, common.KindDateTime, time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	requireCoercionError(t, common.KindDateTime, int64(0))

	raw := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	require.Equal(t, uuid.UUID(raw), convert(t, common.KindGUID, raw))
	require.Equal(t, uuid.UUID(raw), convert(t, common.KindGUID, raw[:]))
	requireCoercionError(t, common.KindGUID, raw[:15])
	require.Equal(t, raw[:], convert(t, common.KindBytes, uuid.UUID(raw)))

	src := []byte{4, 5}
	cp := convert(t, common.KindBytes, src).([]byte)
	cp[0] = 0
	require.Equal(t, byte(4), src[0])
	requireCoercionError(t, common.KindBytes, "!!")
}

func TestNullPassesThrough(t *testing.T) {
	require.Equal(t, common.Null, convert(t, common.KindInt64, nil))
	require.Equal(t, common.Null, convert(t, common.KindText, common.Null))
}

func TestTableIsClosed(t *testing.T) {
	table := Default().Without(common.KindText, common.KindInt64)
	require.False(t, table.Supports(common.KindText, common.KindInt64))
	require.True(t, Default().Supports(common.KindText, common.KindInt64))
	_, err := table.Convert(common.KindInt64, "1")
	require.True(t, errors.HasCode(err, errors.InvalidCoercion))

	custom := table.With(common.KindText, common.KindInt64, func(value interface{}) (interface{}, error) {
		return int64(len(value.(string))), nil
	})
	res, err := custom.Convert(common.KindInt64, "abcd")
	require.NoError(t, err)
	require.Equal(t, int64(4), res)

	_, err = Default().Convert(common.KindInt64, struct{}{})
	require.True(t, errors.HasCode(err, errors.InvalidCoercion))
}

func TestParseText(t *testing.T) {
	v, err := ParseText(common.KindBoolean, "1")
	require.NoError(t, err)
	require.Equal(t, true, v)
	v, err = ParseText(common.KindInt32, " 17 ")
	require.NoError(t, err)
	require.Equal(t, int32(17), v)
	v, err = ParseText(common.KindText, " kept ")
	require.NoError(t, err)
	require.Equal(t, " kept ", v)

	_, err = ParseText(common.KindDecimal, "1e30")
	require.True(t, errors.HasCode(err, errors.InvalidTextFormat))
	_, err = ParseText(common.KindDateTime, "10000-01-01T00:00:00Z")
	require.True(t, errors.HasCode(err, errors.InvalidTextFormat))
	_, err = ParseText(common.KindUnknown, "x")
	require.True(t, errors.HasCode(err, errors.UnknownKind))
}

func TestFormatText(t *testing.T) {
	s, err := FormatText(uint64(math.MaxUint64))
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", s)
	s, err = FormatText(float32(0.1))
	require.NoError(t, err)
	require.Equal(t, "0.1", s)
	_, err = FormatText(struct{}{})
	require.True(t, errors.HasCode(err, errors.InvalidCoercion))
}
