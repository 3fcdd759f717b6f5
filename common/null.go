package common

// NullValue is the type of the null sentinel. There is exactly one value of it, Null.
type NullValue struct{}

func (NullValue) String() string {
	return "NULL"
}

// Null represents an absent value at the Get/Set and comparison boundaries of a storage, uniformly across kinds.
// It is distinct from Go nil, which the First aggregate uses to mean "no records were supplied".
var Null = NullValue{}

// IsNull returns true if value is the null sentinel.
func IsNull(value interface{}) bool {
	_, ok := value.(NullValue)
	return ok
}
