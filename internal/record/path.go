package record

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/medmatch/intake/internal/shared/errors"
)

// Field paths are dot-separated JSON tag names with numeric list indices,
// mirroring what the presentation layer binds against:
//
//	personalDetails.fullName
//	dependents.1.name
//	benefitPriorities.maternity
//
// SetField assigns a JSON-compatible value to the addressed field; GetField
// reads it back. Both reject unknown paths.

// GetField returns the value at the given field path. It reads from a copy,
// so resolving through an unset optional block never mutates the record.
func GetField(r *Record, path string) (any, error) {
	v, err := resolve(reflect.ValueOf(r.Clone()).Elem(), path, path)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// SetField assigns value to the field at the given path. The value is
// converted through JSON, so anything a decoded request body produces
// (string, float64, bool, maps, slices) is accepted if it fits the field.
func SetField(r *Record, path string, value any) error {
	v, err := resolve(reflect.ValueOf(r).Elem(), path, path)
	if err != nil {
		return err
	}
	if !v.CanSet() {
		return errors.BadRequest(fmt.Sprintf("field %q is not assignable", path))
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.BadRequest(fmt.Sprintf("field %q: unsupported value", path))
	}
	target := reflect.New(v.Type())
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		return errors.BadRequest(fmt.Sprintf("field %q: incompatible value: %v", path, err))
	}
	v.Set(target.Elem())
	return nil
}

// resolve walks one path segment at a time. full is carried for error messages.
func resolve(v reflect.Value, path, full string) (reflect.Value, error) {
	if path == "" {
		return v, nil
	}

	head, rest := path, ""
	if i := strings.IndexByte(path, '.'); i >= 0 {
		head, rest = path[:i], path[i+1:]
	}

	// follow optional (pointer) fields, allocating on the way down
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			if !v.CanSet() {
				return reflect.Value{}, errors.BadRequest(fmt.Sprintf("unknown field path %q", full))
			}
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		field, ok := fieldByTag(v, head)
		if !ok {
			return reflect.Value{}, errors.BadRequest(fmt.Sprintf("unknown field path %q", full))
		}
		return resolve(field, rest, full)

	case reflect.Slice:
		idx, err := strconv.Atoi(head)
		if err != nil || idx < 0 || idx >= v.Len() {
			return reflect.Value{}, errors.BadRequest(fmt.Sprintf("field path %q: no element %q", full, head))
		}
		return resolve(v.Index(idx), rest, full)

	default:
		return reflect.Value{}, errors.BadRequest(fmt.Sprintf("unknown field path %q", full))
	}
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" {
			continue
		}
		if j := strings.IndexByte(tag, ','); j >= 0 {
			tag = tag[:j]
		}
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
