package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Messages for specific field/tag pairs. Keys use the last path segment.
var fieldMessages = map[string]string{
	"deliverables.min":  "At least one deliverable is required",
	"deliverables.max":  "Cannot have more than 20 deliverables",
	"paymentAmount.min": "Payment amount cannot be negative",
	"paymentAmount.max": "Payment amount exceeds maximum",
	"brandId.objectid":  "Invalid brand ID",
	"dueDate.date":      "Invalid date format",
}

func message(path string, fe validator.FieldError) string {
	key := fe.Field() + "." + fe.Tag()
	if msg, ok := fieldMessages[key]; ok {
		return msg
	}
	label := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if isText(fe.Kind()) {
			if fe.Param() == "1" {
				return label + " cannot be empty"
			}
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if isText(fe.Kind()) {
			return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s cannot contain more than %s items", label, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", label, fe.Param())
	case "wholenumber":
		return "Expected a whole number"
	case "objectid":
		return "Invalid ObjectId format"
	case "date":
		return "Invalid date format"
	case "platform":
		return label + " must be one of: instagram, youtube, tiktok, twitter"
	case "deliverabletype":
		return label + " must be one of: reel, post, story, short"
	case "deliverablestatus":
		return label + " must be one of: pending, posted"
	case "paymentstatus":
		return label + " must be one of: pending, partial, paid"
	case "plan":
		return label + " must be one of: free, pro, studio"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, path)
	}
}

func isText(k reflect.Kind) bool {
	return k == reflect.String
}

// humanize turns "paymentAmount" into "Payment amount".
func humanize(field string) string {
	if field == "" {
		return "Value"
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
