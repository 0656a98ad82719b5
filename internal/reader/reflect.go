package reader

import (
	"fmt"
	"reflect"
)

// SetNestedField walks path through struct fields (allocating nil pointers on
// the way) and sets the last one to value.
func SetNestedField(obj reflect.Value, path []string, value string) error {
	for i := 0; i < len(path)-1; i++ {
		obj = obj.FieldByName(path[i])
		if !obj.IsValid() {
			return fmt.Errorf("invalid field path: %s", path[i])
		}
		if obj.Kind() == reflect.Pointer {
			if obj.IsNil() {
				obj.Set(reflect.New(obj.Type().Elem()))
			}
			obj = obj.Elem()
		}
		if obj.Kind() != reflect.Struct {
			return fmt.Errorf("field %s is not a struct", path[i])
		}
	}
	return SetFlatField(obj, path[len(path)-1], value)
}

func SetFlatField(obj reflect.Value, name string, value string) error {
	field := obj.FieldByName(name)

	if !field.IsValid() {
		return fmt.Errorf("invalid field path: %s", name)
	}
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %s", name)
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("field %s is not a string", name)
	}

	field.SetString(value)
	return nil
}

// ValidateTarget reports whether path names a settable string field of t.
func ValidateTarget(t reflect.Type, path []string) error {
	for i, name := range path {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return fmt.Errorf("field %s is not a struct", path[i-1])
		}
		f, ok := t.FieldByName(name)
		if !ok || !f.IsExported() {
			return fmt.Errorf("invalid field path: %s", name)
		}
		t = f.Type
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.String {
		return fmt.Errorf("field %s is not a string", path[len(path)-1])
	}
	return nil
}
