package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"rideshare-backend/internal/models"
	"rideshare-backend/internal/pricing"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies; booking payloads are a few hundred bytes.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so errors match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseAmount(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// A nil result means dst is ready to use.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) []models.FieldError {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return []models.FieldError{decodeFieldError(err)}
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func decodeFieldError(err error) models.FieldError {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return models.FieldError{Field: field, Message: fmt.Sprintf("must be a %s", jsonTypeName(typeErr.Type))}
	case errors.As(err, &maxErr):
		return models.FieldError{Field: "body", Message: "is too large"}
	case errors.Is(err, io.EOF):
		return models.FieldError{Field: "body", Message: "is required"}
	default:
		return models.FieldError{Field: "body", Message: "must be a valid JSON object"}
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "number"
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "money":
		return "must be a decimal amount"
	case "rfc3339":
		return "must be an RFC 3339 timestamp"
	default:
		return "is invalid"
	}
}
