package validation

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"worker/internal/config"
	"worker/internal/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultNameMinLength = 1
	defaultNameMaxLength = 255
)

// Validator wraps go-playground/validator with English messages and the
// configured name bounds
type Validator struct {
	validate      *validator.Validate
	translator    ut.Translator
	nameMinLength int
	nameMaxLength int
}

// NewValidator creates a new validator instance with default bounds
func NewValidator() *Validator {
	return newValidator(defaultNameMinLength, defaultNameMaxLength)
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	return newValidator(cfg.Validation.ProjectNameMinLength, cfg.Validation.ProjectNameMaxLength)
}

func newValidator(minLength, maxLength int) *Validator {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())

	// prefer json tag names in messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "-" || tag == "" {
			return fld.Name
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		return tag
	})

	_ = en_translations.RegisterDefaultTranslations(v, trans)

	val := &Validator{
		validate:      v,
		translator:    trans,
		nameMinLength: minLength,
		nameMaxLength: maxLength,
	}
	val.registerNameLength()
	val.registerSingleLine()
	val.registerText()
	registerShortMax(v, trans)
	return val
}

// Struct validates s and converts failures to a *ValidationError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	validationError := NewValidationError()
	for _, fe := range verrs {
		validationError.AddError(fe.Field(), errorTypeForTag(fe.Tag()), fe.Translate(v.translator), fe.Value())
	}
	return validationError
}

// ValidateID checks that an identifier is a positive integer
func (v *Validator) ValidateID(field string, id int64) error {
	if err := v.validate.Var(id, "gt=0"); err != nil {
		return errors.NewInvalidInputError(field, id, "must be a positive integer")
	}
	return nil
}

// NormalizeName trims surrounding whitespace and applies Unicode NFC so that
// visually identical names compare equal
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// IsSingleLine reports whether s is free of control characters
func IsSingleLine(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// IsText reports whether s is free of control characters other than
// newlines and tabs
func IsText(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsControl(r) && r != '\n' && r != '\t'
	}) < 0
}

func (v *Validator) validNameLength(name string) bool {
	length := utf8.RuneCountInString(name)
	return length >= v.nameMinLength && length <= v.nameMaxLength
}

func (v *Validator) registerNameLength() {
	_ = v.validate.RegisterValidation("name_length", func(fl validator.FieldLevel) bool {
		return v.validNameLength(fl.Field().String())
	})
	_ = v.validate.RegisterTranslation("name_length", v.translator,
		func(ut ut.Translator) error {
			return ut.Add("name_length", "{0} must be between {1} and {2} characters long", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("name_length", fe.Field(), strconv.Itoa(v.nameMinLength), strconv.Itoa(v.nameMaxLength))
			return msg
		},
	)
}

func (v *Validator) registerSingleLine() {
	_ = v.validate.RegisterValidation("single_line", func(fl validator.FieldLevel) bool {
		return IsSingleLine(fl.Field().String())
	})
	_ = v.validate.RegisterTranslation("single_line", v.translator,
		func(ut ut.Translator) error {
			return ut.Add("single_line", "{0} must not contain line breaks or control characters", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("single_line", fe.Field())
			return msg
		},
	)
}

func (v *Validator) registerText() {
	_ = v.validate.RegisterValidation("text", func(fl validator.FieldLevel) bool {
		return IsText(fl.Field().String())
	})
	_ = v.validate.RegisterTranslation("text", v.translator,
		func(ut ut.Translator) error {
			return ut.Add("text", "{0} must not contain control characters", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("text", fe.Field())
			return msg
		},
	)
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1} characters long", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

func errorTypeForTag(tag string) ValidationErrorType {
	switch tag {
	case "required":
		return ErrorTypeRequired
	case "name_length", "max", "min":
		return ErrorTypeInvalidLength
	case "single_line", "text":
		return ErrorTypeInvalidCharacter
	default:
		return ErrorTypeInvalidValue
	}
}
