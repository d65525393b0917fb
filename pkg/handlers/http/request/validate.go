package request

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

var ErrInvalidBody = errors.New("request body must be a JSON object")

var parserPool fastjson.ParserPool

type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// fields checks body shape before it is decoded into a struct, so that
// null or numbers never turn into strings.
type fields struct {
	obj *fastjson.Object
}

func parseObject(body []byte, fn func(f fields) error) error {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return ErrInvalidBody
	}
	obj, err := v.Object()
	if err != nil {
		return ErrInvalidBody
	}
	return fn(fields{obj: obj})
}

func (f fields) requiredString(name string) error {
	v := f.obj.Get(name)
	if v == nil || v.Type() == fastjson.TypeNull {
		return &FieldError{Field: name, Reason: "is required"}
	}
	if v.Type() != fastjson.TypeString {
		return &FieldError{Field: name, Reason: "must be a string"}
	}
	return nil
}

func (f fields) requiredNonEmptyString(name string) error {
	if err := f.requiredString(name); err != nil {
		return err
	}
	if len(f.obj.Get(name).GetStringBytes()) == 0 {
		return &FieldError{Field: name, Reason: "must not be empty"}
	}
	return nil
}

func (f fields) optionalString(name string) error {
	v := f.obj.Get(name)
	if v == nil || v.Type() == fastjson.TypeNull || v.Type() == fastjson.TypeString {
		return nil
	}
	return &FieldError{Field: name, Reason: "must be a string"}
}

func (f fields) optionalBool(name string) error {
	v := f.obj.Get(name)
	if v == nil {
		return nil
	}
	switch v.Type() {
	case fastjson.TypeNull, fastjson.TypeTrue, fastjson.TypeFalse:
		return nil
	default:
		return &FieldError{Field: name, Reason: "must be a boolean"}
	}
}

func (f fields) optionalStringArray(name string) error {
	v := f.obj.Get(name)
	if v == nil || v.Type() == fastjson.TypeNull {
		return nil
	}
	items, err := v.Array()
	if err != nil {
		return &FieldError{Field: name, Reason: "must be an array of strings"}
	}
	for _, item := range items {
		if item.Type() != fastjson.TypeString {
			return &FieldError{Field: name, Reason: "must be an array of strings"}
		}
	}
	return nil
}
