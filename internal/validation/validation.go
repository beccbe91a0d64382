package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/go-playground/validator/v10"
)

// Message is the response text for one failed rule.
type Message struct {
	ID   string
	Text string
}

// Messages maps "<jsonField>.<tag>" to a message. A nested field may be keyed by
// its dotted path without indexes ("attributes.name.required"), which wins over
// the bare field name. The special tag "type" is used when the JSON value has
// the wrong type for the field.
type Messages map[string]Message

var (
	invalidBody  = apperror.Validation("InvalidRequestBody", "Invalid request body")
	invalidField = Message{ID: "InvalidField", Text: "Invalid value"}
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{v: v}
}

// Struct runs the declared rules and returns the first violation as a 400 error.
func (vd *Validator) Struct(s any, msgs Messages) error {
	first, err := vd.firstViolation(s)
	if err != nil {
		return err
	}
	if first == nil {
		return nil
	}
	return msgs.forViolation(first)
}

func (vd *Validator) firstViolation(s any) (validator.FieldError, error) {
	err := vd.v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, apperror.Internal(err)
	}
	return verrs[0], nil
}

// DecodeJSON decodes the body into dst, reporting type mismatches with the
// field's "type" message.
func DecodeJSON(body io.Reader, dst any, msgs Messages) error {
	typeErr, err := decodeJSON(body, dst)
	if err != nil {
		return err
	}
	if typeErr != nil {
		return msgs.forTypeError(typeErr)
	}
	return nil
}

// decodeJSON keeps decoding past a type mismatch so the remaining fields can
// still be validated.
func decodeJSON(body io.Reader, dst any) (*json.UnmarshalTypeError, error) {
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return nil, nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr, nil
	}
	return nil, invalidBody
}

// Decode decodes the body and applies the rules of dst. When both a type
// mismatch and a rule violation occur, the one on the earlier field wins; on
// the same field the type mismatch wins.
func (vd *Validator) Decode(body io.Reader, dst any, msgs Messages) error {
	typeErr, err := decodeJSON(body, dst)
	if err != nil {
		return err
	}
	first, err := vd.firstViolation(dst)
	if err != nil {
		return err
	}

	switch {
	case typeErr == nil && first == nil:
		return nil
	case typeErr == nil:
		return msgs.forViolation(first)
	case first == nil:
		return msgs.forTypeError(typeErr)
	}

	order := fieldOrder(dst)
	if rank(order, topField(fieldPath(first.Namespace()))) < rank(order, topField(typeErr.Field)) {
		return msgs.forViolation(first)
	}
	return msgs.forTypeError(typeErr)
}

func (m Messages) forViolation(fe validator.FieldError) error {
	if msg, ok := m[fieldPath(fe.Namespace())+"."+fe.Tag()]; ok {
		return toError(msg)
	}
	return toError(m.lookup(fe.Field(), fe.Tag()))
}

func (m Messages) forTypeError(typeErr *json.UnmarshalTypeError) error {
	if msg, ok := m[typeErr.Field+".type"]; ok {
		return toError(msg)
	}
	field := typeErr.Field
	if i := strings.LastIndex(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return toError(m.lookup(field, "type"))
}

// fieldOrder maps the json names of dst's top-level fields to their position.
func fieldOrder(dst any) map[string]int {
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	order := map[string]int{}
	if t == nil || t.Kind() != reflect.Struct {
		return order
	}
	for i := 0; i < t.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "" {
			order[name] = i
		}
	}
	return order
}

func rank(order map[string]int, field string) int {
	if i, ok := order[field]; ok {
		return i
	}
	return len(order)
}

func topField(path string) string {
	name, _, _ := strings.Cut(path, ".")
	return name
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func (m Messages) lookup(field, tag string) Message {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	return invalidField
}

// fieldPath turns "Request.attributes[0].name" into "attributes.name".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	var b strings.Builder
	depth := 0
	for _, r := range rest {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toError(m Message) error {
	return apperror.Validation(m.ID, m.Text)
}
