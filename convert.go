package graft

import (
	"fmt"
	"reflect"
	"sort"
)

// Method binding: Def.Methods entries are ordinary Go functions whose first
// parameter is the native receiver. Arguments and results are converted
// between Value and Go types by reflection; a trailing error return is
// surfaced as a host-visible exception by the caller.

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	valueType = reflect.TypeOf(Value{})
)

func bindMethods[T any](fns map[string]any) (map[string]Method, error) {
	methods := make(map[string]Method, len(fns))
	for name, fn := range fns {
		m, err := bindMethod[T](name, fn)
		if err != nil {
			return nil, err
		}
		methods[name] = m
	}
	return methods, nil
}

func bindMethod[T any](name string, fn any) (Method, error) {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	recvType := reflect.TypeOf((*T)(nil))

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("method %q: expected function, got %T", name, fn)
	}
	if fnType.NumIn() < 1 || fnType.In(0) != recvType {
		return nil, fmt.Errorf("method %q: first parameter must be %v", name, recvType)
	}

	return func(rt *Runtime, recv *Object, args []Value) (Value, error) {
		p, ok := Native[T](recv)
		if !ok {
			return Value{}, fmt.Errorf("%s: receiver is not a %v", name, recvType)
		}

		numIn := fnType.NumIn()
		variadic := fnType.IsVariadic()
		if variadic {
			if len(args) < numIn-2 {
				return Value{}, fmt.Errorf("%s: wrong # args: expected at least %d, got %d", name, numIn-2, len(args))
			}
		} else if len(args) != numIn-1 {
			return Value{}, fmt.Errorf("%s: wrong # args: expected %d, got %d", name, numIn-1, len(args))
		}

		callArgs := make([]reflect.Value, len(args)+1)
		callArgs[0] = reflect.ValueOf(p)
		for j, arg := range args {
			var paramType reflect.Type
			if variadic && j >= numIn-2 {
				paramType = fnType.In(numIn - 1).Elem()
			} else {
				paramType = fnType.In(j + 1)
			}
			converted, err := valueToGo(arg, paramType)
			if err != nil {
				return Value{}, fmt.Errorf("%s: argument %d: %v", name, j+1, err)
			}
			callArgs[j+1] = converted
		}

		return goResults(fnVal.Call(callArgs), fnType)
	}, nil
}

// valueToGo converts a runtime value to a Go value of the target type.
func valueToGo(v Value, targetType reflect.Type) (reflect.Value, error) {
	if targetType == valueType {
		return reflect.ValueOf(v), nil
	}

	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(v.String()).Convert(targetType), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt(v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected integer but got %s", v.Kind())
		}
		return reflect.ValueOf(n).Convert(targetType), nil

	case reflect.Float32, reflect.Float64:
		d, ok := toDouble(v)
		if !ok {
			return reflect.Value{}, fmt.Errorf("expected number but got %s", v.Kind())
		}
		return reflect.ValueOf(d).Convert(targetType), nil

	case reflect.Bool:
		switch v.Kind() {
		case KindUndef, KindNull, KindFalse, KindTrue, KindInt, KindDouble, KindString:
			return reflect.ValueOf(truthy(v)).Convert(targetType), nil
		}
		return reflect.Value{}, fmt.Errorf("expected boolean but got %s", v.Kind())

	case reflect.Slice:
		if v.Kind() != KindArray {
			return reflect.Value{}, fmt.Errorf("expected array but got %s", v.Kind())
		}
		vals := v.Array().Values()
		slice := reflect.MakeSlice(targetType, len(vals), len(vals))
		for j, item := range vals {
			converted, err := valueToGo(item, targetType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %v", j, err)
			}
			slice.Index(j).Set(converted)
		}
		return slice, nil

	case reflect.Map:
		if targetType.Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("map key must be string")
		}
		if v.Kind() != KindArray {
			return reflect.Value{}, fmt.Errorf("expected array but got %s", v.Kind())
		}
		a := v.Array()
		m := reflect.MakeMapWithSize(targetType, a.Len())
		for _, key := range a.Order {
			converted, err := valueToGo(a.Items[key], targetType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("value for key %q: %v", key, err)
			}
			m.SetMapIndex(reflect.ValueOf(key), converted)
		}
		return m, nil

	case reflect.Ptr:
		switch targetType {
		case reflect.TypeOf((*Array)(nil)):
			if v.Kind() != KindArray {
				return reflect.Value{}, fmt.Errorf("expected array but got %s", v.Kind())
			}
			return reflect.ValueOf(v.Array()), nil
		case reflect.TypeOf((*Object)(nil)):
			if v.Kind() != KindObject {
				return reflect.Value{}, fmt.Errorf("expected object but got %s", v.Kind())
			}
			return reflect.ValueOf(v.Object()), nil
		case reflect.TypeOf((*Resource)(nil)):
			if v.Kind() != KindResource {
				return reflect.Value{}, fmt.Errorf("expected resource but got %s", v.Kind())
			}
			return reflect.ValueOf(v.Resource()), nil
		}
		// A pointer to another registered native type: unwrap the payload.
		if v.Kind() == KindObject && v.Object() != nil && v.Object().native != nil {
			nv := reflect.ValueOf(v.Object().native)
			if nv.Type().AssignableTo(targetType) {
				return nv, nil
			}
			return reflect.Value{}, fmt.Errorf("object wraps %v, not %v", nv.Type(), targetType)
		}
		return reflect.Value{}, fmt.Errorf("expected %v but got %s", targetType, v.Kind())

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %v", targetType)
	}
}

// goResults converts a method call's return values. A trailing error return
// is split off; the first remaining value becomes the result.
func goResults(results []reflect.Value, fnType reflect.Type) (Value, error) {
	if n := fnType.NumOut(); n > 0 && fnType.Out(n-1).Implements(errorType) {
		last := results[len(results)-1]
		if !last.IsNil() {
			return Value{}, last.Interface().(error)
		}
		results = results[:len(results)-1]
	}
	if len(results) == 0 {
		return Null(), nil
	}
	return goToValue(results[0])
}

// goToValue converts a Go value to a runtime value.
func goToValue(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	if rv.Type() == valueType {
		return rv.Interface().(Value), nil
	}

	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Double(rv.Float()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil

	case reflect.Slice, reflect.Array:
		list := NewArray()
		for j := 0; j < rv.Len(); j++ {
			v, err := goToValue(rv.Index(j))
			if err != nil {
				return Value{}, err
			}
			list.Append(v)
		}
		return ArrayValue(list), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("unsupported result map key type: %v", rv.Type().Key())
		}
		a := NewArray()
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, err := goToValue(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())))
			if err != nil {
				return Value{}, err
			}
			a.Set(k, v)
		}
		return ArrayValue(a), nil

	case reflect.Ptr:
		if rv.IsNil() {
			return Null(), nil
		}
		switch p := rv.Interface().(type) {
		case *Array:
			return ArrayValue(p), nil
		case *Object:
			return ObjectValue(p), nil
		case *Resource:
			return ResourceValue(p), nil
		}
		return String(fmt.Sprintf("%v", rv.Interface())), nil

	case reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return goToValue(rv.Elem())

	default:
		return String(fmt.Sprintf("%v", rv.Interface())), nil
	}
}
