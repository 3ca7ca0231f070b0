package interpolation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// InterpolateStruct applies environment variable interpolation to fields tagged with
// `env_interpolation:"yes"`. The struct is modified in place. String fields, slices of
// structs and nested structs are handled; everything else is left untouched.
func InterpolateStruct(v any) error {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct or pointer to struct, got %T", v)
	}

	typ := val.Type()
	var errs []error

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if strings.ToLower(fieldType.Tag.Get("env_interpolation")) != "yes" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			original := field.String()
			if original == "" {
				continue
			}

			interpolated, err := ExpandEnvVars(original)
			if err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
				continue
			}
			field.SetString(interpolated)

		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.Struct {
				continue
			}
			for j := 0; j < field.Len(); j++ {
				if err := InterpolateStruct(field.Index(j).Addr().Interface()); err != nil {
					errs = append(errs, fmt.Errorf("field %s[%d]: %w", fieldType.Name, j, err))
				}
			}

		case reflect.Struct:
			if err := InterpolateStruct(field.Addr().Interface()); err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
			}
		}
	}

	return errors.Join(errs...)
}
