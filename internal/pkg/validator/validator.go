package validator

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/listing-portal/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем json-имена полей, как их видит клиент
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// FieldError - нарушение правила для одного поля
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// Validate - валидация DTO запроса. Возвращает ErrInvalidRequest с первым
// нарушенным полем в деталях.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return errors.ErrInvalidRequest
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"field": fields[0].Field,
		"rule":  fields[0].Rule,
	})
}

// Struct - валидация без преобразования в AppError
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// FieldErrors раскладывает ошибку валидатора на отдельные поля
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil
	}
	result := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		result = append(result, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return result
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
