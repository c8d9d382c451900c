package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Ratio float64 `json:"ratio" validate:"gte=0,lte=20"`
	Inner struct {
		Minutes int `json:"minutes" validate:"lte=180"`
	} `json:"inner"`
}

func TestStruct_Valid(t *testing.T) {
	s := sample{Name: "ok", Ratio: 5}
	assert.NoError(t, Struct(s))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	s := sample{Ratio: 25}
	s.Inner.Minutes = 200

	err := Struct(s)
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "must be <= 20", verr.Fields["ratio"])
	assert.Equal(t, "must be <= 180", verr.Fields["inner.minutes"])
	assert.Contains(t, err.Error(), "invalid input: inner.minutes must be <= 180; name is required; ratio must be <= 20")
}

func TestDescribe_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, Describe(plain))
}
