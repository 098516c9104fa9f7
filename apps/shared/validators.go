package shared

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

// NewValidator instantiates the validator & its english translator, with every custom validation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	grading.RegisterValidators(validate, translator)
	return validate, translator
}

// ErrorMessage renders err for the user; validation failures are listed field by field.
func ErrorMessage(err error, translator ut.Translator) string {
	flds := core.FieldErrors(err, translator)
	if flds == nil {
		return err.Error()
	}
	msgs := make([]string, 0, len(flds))
	for _, fld := range flds {
		msgs = append(msgs, fld.Error)
	}
	return strings.Join(msgs, "; ")
}
