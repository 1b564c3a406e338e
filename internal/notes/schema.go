package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one problem with a request value.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError is returned for any malformed or out-of-range input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = strings.Join(f.Loc, ".") + ": " + f.Msg
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the input against the note schema.
func (in NoteInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate note: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldErrorFor(fe))
	}
	return newValidationError(fields...)
}

func fieldErrorFor(fe validator.FieldError) FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
	case "min":
		return FieldError{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value has at least %s characters", fe.Param()),
			Type: "value_error.any_str.min_length",
		}
	default:
		return FieldError{Loc: loc, Msg: fmt.Sprintf("failed on %q rule", fe.Tag()), Type: "value_error"}
	}
}

// DecodeNoteInput reads a JSON note body and validates it.
func DecodeNoteInput(r io.Reader) (NoteInput, error) {
	var in NoteInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return NoteInput{}, decodeError(err)
	}
	// The body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return NoteInput{}, newValidationError(jsonDecodeError)
	}
	if err := in.Validate(); err != nil {
		return NoteInput{}, err
	}
	return in, nil
}

func decodeError(err error) *ValidationError {
	if errors.Is(err, io.EOF) {
		return newValidationError(FieldError{Loc: []string{"body"}, Msg: "field required", Type: "value_error.missing"})
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return newValidationError(FieldError{Loc: []string{"body"}, Msg: "value is not a valid dict", Type: "type_error.dict"})
		}
		return newValidationError(FieldError{Loc: []string{"body", typeErr.Field}, Msg: "str type expected", Type: "type_error.str"})
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return newValidationError(FieldError{
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
			Type: "value_error.body_too_large",
		})
	}

	return newValidationError(jsonDecodeError)
}

var jsonDecodeError = FieldError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"}

// ParseID parses a note id path segment. It must be a positive integer.
func ParseID(segment string) (int64, error) {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, newValidationError(FieldError{Loc: []string{"path", "id"}, Msg: "value is not a valid integer", Type: "type_error.integer"})
	}
	if err := checkID(id); err != nil {
		return 0, err
	}
	return id, nil
}

func checkID(id int64) error {
	if id <= 0 {
		return newValidationError(FieldError{Loc: []string{"path", "id"}, Msg: "ensure this value is greater than 0", Type: "value_error.number.not_gt"})
	}
	return nil
}
