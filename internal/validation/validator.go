// Package validation binds JSON request bodies and turns validator/v10
// failures into field-level errors with dotted paths such as
// "deliverables.0.quantity".
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strings"
	"time"

	"creatorflow-backend-go/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxBodyBytes caps request bodies read by BindJSON.
const MaxBodyBytes = 1 << 20

// ErrMalformedBody is returned when the body is not a JSON object.
var ErrMalformedBody = errors.New("invalid request body")

// IsObjectID reports whether s is a 24 character hex identifier.
func IsObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// FieldError is a single failing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the set of failing fields for one request.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Normalizer is implemented by request types that trim their input before
// validation.
type Normalizer interface {
	Normalize()
}

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the domain tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		ft, ok := field.Interface().(models.FlexTime)
		if !ok {
			return nil
		}
		if ft.Valid() {
			return ft.Time()
		}
		return ft.Raw()
	}, models.FlexTime{})

	mustRegister(v, "objectid", func(fl validator.FieldLevel) bool {
		return IsObjectID(fl.Field().String())
	})
	mustRegister(v, "wholenumber", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return !math.IsInf(f, 0) && f == math.Trunc(f)
		default:
			return true
		}
	})
	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		_, ok := fl.Field().Interface().(time.Time)
		return ok
	})
	mustRegister(v, "platform", oneOf(models.Platforms))
	mustRegister(v, "deliverabletype", oneOf(models.DeliverableTypes))
	mustRegister(v, "deliverablestatus", oneOf(models.DeliverableStatuses))
	mustRegister(v, "paymentstatus", oneOf(models.PaymentStatuses))
	mustRegister(v, "plan", func(fl validator.FieldLevel) bool {
		return models.Plan(fl.Field().String()).IsValid()
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func oneOf[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, a := range allowed {
			if string(a) == s {
				return true
			}
		}
		return false
	}
}

// Struct normalizes s when it implements Normalizer and validates it.
// It returns Errors or nil.
func (v *Validator) Struct(s interface{}) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		out = append(out, FieldError{Field: path, Message: message(path, fe)})
	}
	return out
}

// BindJSON decodes the request body into dst and validates it.
func (v *Validator) BindJSON(c *gin.Context, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if err := Decode(body, dst); err != nil {
		return err
	}
	return v.Struct(dst)
}

// Decode unmarshals a JSON object body. Type mismatches on individual fields
// are reported as Errors; anything else unparseable is ErrMalformedBody.
func Decode(body []byte, dst interface{}) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return ErrMalformedBody
	}
	err := json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Errors{{Field: typeErr.Field, Message: typeMessage(typeErr.Type)}}
	}
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

// fieldPath turns "CreateDealRequest.deliverables[0].quantity" into
// "deliverables.0.quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "Expected a whole number"
	case reflect.Float32, reflect.Float64:
		return "Expected a number"
	case reflect.String:
		return "Expected a string"
	case reflect.Bool:
		return "Expected a boolean"
	case reflect.Slice, reflect.Array:
		return "Expected an array"
	default:
		return "Invalid value"
	}
}
