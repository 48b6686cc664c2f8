package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	StartTime string `json:"startTime" validate:"required,clock"`
	Capacity  int    `json:"capacity" validate:"min=1"`
}

func TestRegisterCustomRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomRules(v))

	assert.NoError(t, v.Struct(slot{StartTime: "09:30", Capacity: 10}))

	err := v.Struct(slot{StartTime: "9.30am", Capacity: 0})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "startTime", verrs[0].Field())
	assert.Equal(t, TagClock, verrs[0].Tag())
	assert.Equal(t, "capacity", verrs[1].Field())
}
