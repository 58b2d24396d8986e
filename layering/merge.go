package layering

import (
	"reflect"
	"strings"
)

// FillTag marks scalar fields whose zero value counts as missing:
//
//	Mode string `json:"mode" layering:"fill"`
const FillTag = "layering"

// Report lists what Merge took from the weaker layer.
type Report struct {
	// Filled holds dotted JSON paths filled from the weak layer, in field order.
	Filled []string
}

// Changed reports whether anything was filled.
func (r Report) Changed() bool {
	return len(r.Filled) > 0
}

// Merge returns strong with any missing data filled from weak. Nil pointers,
// maps, slices and interfaces are missing, as are zero scalars on fields
// tagged `layering:"fill"`. Neither input is modified.
func Merge[T any](strong, weak T) (T, Report) {
	var zero T
	report := Report{}
	merged := mergeValue(reflect.ValueOf(strong), reflect.ValueOf(weak), "", false, &report)
	if !merged.IsValid() {
		return zero, report
	}
	out, ok := merged.Interface().(T)
	if !ok {
		result := reflect.New(reflect.TypeOf(zero)).Elem()
		result.Set(merged.Convert(reflect.TypeOf(zero)))
		return result.Interface().(T), report
	}
	return out, report
}

func mergeValue(strong, weak reflect.Value, path string, fillZero bool, report *Report) reflect.Value {
	if !strong.IsValid() {
		if weak.IsValid() {
			report.fill(path)
		}
		return cloneValue(weak)
	}

	switch strong.Kind() {
	case reflect.Pointer:
		if strong.IsNil() {
			return fillFrom(strong, weak, path, report)
		}
		var weakElem reflect.Value
		if weak.IsValid() && weak.Kind() == reflect.Pointer && !weak.IsNil() {
			weakElem = weak.Elem()
		}
		merged := mergeValue(strong.Elem(), weakElem, path, false, report)
		result := reflect.New(strong.Type().Elem())
		result.Elem().Set(merged)
		return result
	case reflect.Interface:
		if strong.IsNil() {
			return fillFrom(strong, weak, path, report)
		}
		return cloneValue(strong)
	case reflect.Struct:
		result := reflect.New(strong.Type()).Elem()
		var weakStruct reflect.Value
		if weak.IsValid() && weak.Type() == strong.Type() {
			weakStruct = weak
		}
		for i := 0; i < strong.NumField(); i++ {
			field := result.Field(i)
			if !field.CanSet() {
				continue
			}
			meta := strong.Type().Field(i)
			var weakField reflect.Value
			if weakStruct.IsValid() {
				weakField = weakStruct.Field(i)
			}
			fill := meta.Tag.Get(FillTag) == "fill"
			field.Set(mergeValue(strong.Field(i), weakField, joinPath(path, fieldName(meta)), fill, report))
		}
		return result
	case reflect.Map:
		if strong.IsNil() {
			return fillFrom(strong, weak, path, report)
		}
		return cloneValue(strong)
	case reflect.Slice:
		if strong.IsNil() {
			return fillFrom(strong, weak, path, report)
		}
		return cloneValue(strong)
	default:
		if fillZero && strong.IsZero() && weak.IsValid() && !weak.IsZero() {
			report.fill(path)
			return cloneValue(weak)
		}
		return cloneValue(strong)
	}
}

func fillFrom(strong, weak reflect.Value, path string, report *Report) reflect.Value {
	if !weak.IsValid() || weak.Type() != strong.Type() || weak.IsNil() {
		return reflect.Zero(strong.Type())
	}
	report.fill(path)
	return cloneValue(weak)
}

func (r *Report) fill(path string) {
	if path == "" {
		path = "."
	}
	r.Filled = append(r.Filled, path)
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := cloneValue(v.Elem())
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		return elem.Convert(v.Type())
	case reflect.Struct:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := clone.Field(i)
			if !field.CanSet() {
				continue
			}
			field.Set(cloneValue(v.Field(i)))
		}
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	default:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		return out
	}
}
