package errors

import (
	"fmt"
)

type ErrorCode int

const (
	InternalError = iota
	InvalidConfiguration
	InvalidStatement
	UnknownKind
	UnknownTable
	TableAlreadyExists
	UnknownColumn
	ColumnAlreadyExists
	RecordOutOfRange
	WrongNumberOfValues

	Overflow
	UnsupportedAggregate
	InvalidCoercion
	InvalidTextFormat
)

func NewInternalError(ref string) StoreError {
	return NewStoreErrorf(InternalError, "Internal error - reference: %s please consult server logs for details", ref)
}

func NewInvalidConfigurationError(msg string) StoreError {
	return NewStoreErrorf(InvalidConfiguration, "Invalid configuration: %s", msg)
}

func NewInvalidStatementError(msg string) StoreError {
	return NewStoreErrorf(InvalidStatement, "%s", msg)
}

func NewUnknownKindError(kind string) StoreError {
	return NewStoreErrorf(UnknownKind, "Unknown column kind %s", kind)
}

func NewUnknownTableError(tableName string) StoreError {
	return NewStoreErrorf(UnknownTable, "Unknown table: %s", tableName)
}

func NewTableAlreadyExistsError(tableName string) StoreError {
	return NewStoreErrorf(TableAlreadyExists, "Table already exists: %s", tableName)
}

func NewUnknownColumnError(tableName string, columnName string) StoreError {
	return NewStoreErrorf(UnknownColumn, "Table %s does not have a column %s", tableName, columnName)
}

func NewColumnAlreadyExistsError(tableName string, columnName string) StoreError {
	return NewStoreErrorf(ColumnAlreadyExists, "Column %s already exists on %s", columnName, tableName)
}

func NewRecordOutOfRangeError(record int, count int) StoreError {
	return NewStoreErrorf(RecordOutOfRange, "Record %d out of range, table has %d records", record, count)
}

func NewWrongNumberOfValuesError(expected int, actual int) StoreError {
	return NewStoreErrorf(WrongNumberOfValues, "Wrong number of values, expected %d got %d", expected, actual)
}

// NewOverflowError is returned when an accumulation or narrowing leaves the range of kind.
func NewOverflowError(kind string) StoreError {
	return NewStoreErrorf(Overflow, "Value was either too large or too small for %s", kind)
}

func NewUnsupportedAggregateError(aggregate string, kind string) StoreError {
	return NewStoreErrorf(UnsupportedAggregate, "Aggregate %s is not supported for %s", aggregate, kind)
}

func NewInvalidCoercionError(from string, kind string, reason string) StoreError {
	if reason == "" {
		return NewStoreErrorf(InvalidCoercion, "Cannot convert %s to %s", from, kind)
	}
	return NewStoreErrorf(InvalidCoercion, "Cannot convert %s to %s: %s", from, kind, reason)
}

func NewInvalidTextFormatError(text string, kind string) StoreError {
	return NewStoreErrorf(InvalidTextFormat, "Text %q is not a valid %s", text, kind)
}

func NewStoreErrorf(errorCode ErrorCode, msgFormat string, args ...interface{}) StoreError {
	msg := fmt.Sprintf(fmt.Sprintf("CS%04d - %s", errorCode, msgFormat), args...)
	return StoreError{Code: errorCode, Msg: msg}
}

// StoreError is any kind of error that is exposed to users of a storage or table, and to the shell
type StoreError struct {
	Code ErrorCode
	Msg  string
}

func (u StoreError) Error() string {
	return u.Msg
}

// HasCode reports whether err, or any error it wraps, is a StoreError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var serr StoreError
	if As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// MaybeAddStack adds a stack trace to err unless it is a StoreError, which is meant for users and carries no stack.
func MaybeAddStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(StoreError); ok {
		return err
	}
	return WithStack(err)
}
