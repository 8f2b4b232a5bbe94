package listing

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/jask/teachdesk/internal/model"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag = "notblank"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(t ut.Translator) error { return t.Add(notBlankTag, "{0} cannot be blank", true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(notBlankTag, fe.Field())
			return msg
		})
}

// FieldError is a validation failure on one column.
type FieldError struct {
	Field   string
	Message string
}

// Validate checks buf against the required columns of t. Only presence is
// checked; the primary key and boolean columns are skipped.
func Validate(t model.Table, buf model.Record) []FieldError {
	var errs []FieldError
	for _, col := range t.Editable() {
		if !col.Required || col.Kind == model.KindBool {
			continue
		}
		tag, value := ruleFor(col, buf)
		err := validate.Var(value, tag)
		if err == nil {
			continue
		}
		errs = append(errs, FieldError{Field: col.Name, Message: message(err, col)})
	}
	return errs
}

func ruleFor(col model.Column, buf model.Record) (string, any) {
	switch col.Kind {
	case model.KindInt, model.KindRef:
		return "required", buf.Int(col.Name)
	default:
		return notBlankTag, buf.String(col.Name)
	}
}

// message translates the first failure and substitutes the column label,
// since Var has no field name of its own.
func message(err error, col model.Column) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return col.Label + " is invalid"
	}
	msg, terr := translator.T(verrs[0].Tag(), col.Label)
	if terr != nil || msg == "" {
		return col.Label + " is invalid"
	}
	return msg
}
