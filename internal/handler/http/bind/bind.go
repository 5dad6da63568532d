// Package bind decodes JSON request bodies and validates them with
// go-playground/validator struct tags.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"healthinfo-simplifier/internal/handler/http/respond"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates v and returns validator.ValidationErrors on failure.
func Struct(v any) error {
	return validate.Struct(v)
}

// JSON decodes the request body into dst and validates it. On failure it
// writes a 400 (or 413 for oversized bodies) and returns false.
func JSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respond.Error(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body must not exceed %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			respond.Error(w, http.StatusBadRequest, errors.New("request body is required"))
		default:
			respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON request body"))
		}
		return false
	}

	if err := Struct(dst); err != nil {
		respond.ValidationFailed(w, FieldErrors(err))
		return false
	}
	return true
}

// FieldErrors maps validation errors to field name -> message.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": "invalid request"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return fields
}

// fieldPath drops the root struct name from the namespace,
// e.g. "batchRequest.documents[0].url" becomes "documents[0].url".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without_all":
		return "one of text, html or url is required"
	case "excluded_with":
		return "cannot be combined with " + strings.ToLower(fe.Param())
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "url", "http_url":
		return "must be a valid http(s) URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "dive":
		return "is invalid"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
