package validators

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so codes and messages match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns its field errors ordered by
// precedence: missing fields first, then enum violations, then the rest.
// Within a tier the struct declaration order is kept.
func ValidateStruct(s interface{}) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Tag: "invalid", Code: models.CodeInvalidBody, Message: err.Error()}}
	}

	validationErrors := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Code:    errorCode(fe),
			Message: errorMessage(fe),
		})
	}

	sort.SliceStable(validationErrors, func(i, j int) bool {
		return tagTier(validationErrors[i].Tag) < tagTier(validationErrors[j].Tag)
	})

	return validationErrors
}

// First converts the leading validation error into an application error.
func (v ValidationErrors) First() *models.AppError {
	if len(v) == 0 {
		return nil
	}
	return models.NewValidationError(v[0].Code, v[0].Message)
}

func tagTier(tag string) int {
	switch tag {
	case "required", "min":
		return 0
	case "oneof":
		return 1
	default:
		return 2
	}
}

func errorCode(fe validator.FieldError) string {
	field := upperSnake(fe.Field())
	switch fe.Tag() {
	case "required", "min":
		return "MISSING_" + field
	case "max":
		return "INVALID_" + field + "_LENGTH"
	default:
		return "INVALID_" + field
	}
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid %s. Must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be an ISO-8601 timestamp", fe.Field())
	case "latitude", "longitude":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("Validation failed for %s", fe.Field())
	}
}

// upperSnake turns ambulanceId into AMBULANCE_ID.
func upperSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
