package id

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	a := GenTraceID()
	b := GenTraceID()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, uuid.Nil, uuid.FromStringOrNil(a))

	assert.Equal(t, TraceIDFrom("loan"), TraceIDFrom("loan"))
	assert.NotEqual(t, TraceIDFrom("loan"), TraceIDFrom("loan2"))

	assert.Equal(t, LoanTraceID(1, "fund", 1), LoanTraceID(1, "fund", 1))
	assert.NotEqual(t, LoanTraceID(1, "fund", 1), LoanTraceID(1, "fund", 2))
	assert.NotEqual(t, LoanTraceID(1, "fund", 1), LoanTraceID(1, "settle", 1))
}

func TestNum2Str(t *testing.T) {
	assert.Equal(t, "42", Num2Str(42))
}
