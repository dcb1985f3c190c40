package validator

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ciRe matches a national-ID-like identifier: 7 or 8 digits.
var ciRe = regexp.MustCompile(`^\d{7,8}$`)

// The ci rule is registered on gin's binding engine so request structs can
// declare it in their binding tags.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ci", func(fl validator.FieldLevel) bool {
			return ciRe.MatchString(fl.Field().String())
		})
	}
}

// Details flattens a binding error into a field -> failed-tag map for error
// responses. Returns nil when err carries no field-level information, such as
// malformed JSON.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// ValidCI reports whether s has the national-ID shape used for participants.
func ValidCI(s string) bool {
	return ciRe.MatchString(s)
}
