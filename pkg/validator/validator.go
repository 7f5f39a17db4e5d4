package validator

import (
	"reflect"
	"strings"

	"home-service-booking/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		return entity.BookingStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("actor_type", func(fl validator.FieldLevel) bool {
		return entity.ActorType(fl.Field().String()).IsValid()
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "booking_status":
				errors[field] = field + " must be one of " + joinStatuses()
			case "actor_type":
				errors[field] = field + " must be one of customer, provider, admin, system"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

// jsonFieldName reports fields by their JSON name so messages match the request body
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func joinStatuses() string {
	statuses := entity.AllBookingStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
