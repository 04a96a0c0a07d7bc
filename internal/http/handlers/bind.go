package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes and validates the body, flattening whatever went wrong
// into one human-readable longMessage. Returns false after writing the 400.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)
	if err != nil {
		RespondBadRequest(ctx, bindErrorMessage(err, out))
		return false
	}
	return true
}

func bindErrorMessage(err error, out interface{}) string {
	rootType := baseStructType(out)

	// validator errors (struct binding tags)
	var validatorErrors validator.ValidationErrors
	if errors.As(err, &validatorErrors) {
		parts := make([]string, 0, len(validatorErrors))
		for _, fe := range validatorErrors {
			field := jsonFieldName(rootType, fe.StructField())
			parts = append(parts, field+" "+validationMessage(fe.Tag(), fe.Param()))
		}
		return strings.Join(parts, "; ")
	}

	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) {
		return "request body is not valid JSON"
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		field := jsonFieldName(rootType, typeError.Field)
		if field == "" {
			field = "body"
		}
		return fmt.Sprintf("%s must be of type %s", field, typeError.Type.String())
	}

	// http.MaxBytesReader error, set by the body-size middleware
	if strings.Contains(err.Error(), "request body too large") {
		return "request body too large"
	}

	return "invalid request body"
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

// jsonFieldName maps a struct field name to its json tag. Request structs
// here are flat, so a single-level lookup is enough.
func jsonFieldName(rootType reflect.Type, fieldName string) string {
	fieldName = strings.TrimSpace(fieldName)
	if rootType == nil || fieldName == "" {
		return fieldName
	}

	sf, ok := rootType.FieldByName(fieldName)
	if !ok {
		return fieldName
	}

	tag := sf.Tag.Get("json")
	if tag == "" {
		return fieldName
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return fieldName
	}
	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "len":
		return "must be exactly " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "gtefield":
		return "must be greater than or equal to " + param
	case "url":
		return "must be a valid URL"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
