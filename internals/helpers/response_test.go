package helper

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type periodIn struct {
	Number int    `json:"periodNumber" validate:"required,gte=1"`
	Start  string `json:"startTime"    validate:"required,hhmm"`
}

type timetableIn struct {
	Class   string     `json:"class"   validate:"required,uuid"`
	Periods []periodIn `json:"periods" validate:"required,min=1,dive"`
}

func TestFieldErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	err := v.Struct(timetableIn{
		Class:   "nope",
		Periods: []periodIn{{Number: 1, Start: "7am"}},
	})

	got := FieldErrors(err)
	assert.Equal(t, map[string][]string{
		"class":                {"must be a valid uuid"},
		"periods[0].startTime": {"must be a time in HH:mm"},
	}, got)
}

func TestFieldErrors_NonValidatorError(t *testing.T) {
	assert.Equal(t, map[string][]string{"_": {"boom"}}, FieldErrors(errors.New("boom")))
}

func TestHHMM(t *testing.T) {
	v := NewValidator()
	for _, ok := range []string{"07:00", "23:59", "07:00:00"} {
		assert.NoError(t, v.Var(ok, "hhmm"), ok)
	}
	for _, bad := range []string{"24:00", "7", "07:60", ""} {
		assert.Error(t, v.Var(bad, "hhmm"), bad)
	}
}
