package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// Custom binding tags
const (
	// TagClock accepts a 24h "HH:MM" time
	TagClock = "clock"
)

// RegisterCustomRules adds the application's tags to v and makes
// field errors report JSON names instead of Go field names.
func RegisterCustomRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation(TagClock, func(fl validator.FieldLevel) bool {
		return helpers.IsClock(fl.Field().String())
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
