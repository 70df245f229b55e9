package dto

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// Task codes look like TASK-001 or PROJECT-123: uppercase prefix, hyphen, number.
	taskCodePattern = regexp.MustCompile(`^[A-Z]+-\d+$`)
	// Tags are comma-separated alphanumeric words: "tag1, tag two, tag3".
	tagsPattern = regexp.MustCompile(`^[a-zA-Z0-9\s]+(,\s*[a-zA-Z0-9\s]+)*$`)
)

// RegisterValidations installs the custom field rules on gin's validator
// engine. Must run once before the router starts binding requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	// Report field errors under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("taskcode", validTaskCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("tagscsv", validTags); err != nil {
		return err
	}
	return v.RegisterValidation("password", validPassword)
}

func validTaskCode(fl validator.FieldLevel) bool {
	return taskCodePattern.MatchString(fl.Field().String())
}

func validTags(fl validator.FieldLevel) bool {
	return tagsPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validPassword requires at least one uppercase letter, one lowercase letter,
// and one digit or symbol. Length is handled by the min/max tags. The rule is
// a rune scan because Go's regexp has no lookahead.
func validPassword(fl validator.FieldLevel) bool {
	var upper, lower, other bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		default:
			other = true
		}
	}
	return upper && lower && other
}
