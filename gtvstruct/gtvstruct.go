// Package gtvstruct maps Go struct values onto gtv.Value trees behind a
// small, purpose-named entry point backed by a hand-written reflective
// walk: one exported entry point, private recursive helpers, tag-driven
// field naming.
package gtvstruct

import (
	"math/big"
	"reflect"

	"github.com/devops-vn/postchain-client-go/gtv"
	"github.com/devops-vn/postchain-client-go/postchainerr"
)

// ToGTV converts v into a gtv.Value using reflection:
//
//	struct   -> Dict, one entry per exported field in declaration order
//	           (then canonically re-sorted by gtv.NewDict)
//	string   -> Text
//	bool     -> Boolean
//	int*/uint* -> Integer (must fit in int64)
//	[]byte, [N]byte -> ByteArray
//	slice/array (other element types) -> Array
//	map[string]T -> Dict
//	big.Int  -> BigInteger
//	*T (nil) -> Null; *T (non-nil) -> ToGTV(*T)
//	gtv.Value -> returned unchanged
//
// Struct fields may carry a `gtv:"name"` tag to override the wire key, or
// `gtv:"-"` to skip the field entirely. A `gtv:"name,bigint"` tag maps a
// *big.Int or big.Int field to GTV BigInteger, as the default path already
// does, and rejects any field of another type. A `gtv:"name,bigdecimal"` tag treats a string
// field as GTV Decimal (validated the same way gtv.Decimal validates it)
// instead of the default Text inference.
func ToGTV(v interface{}) (gtv.Value, error) {
	if v == nil {
		return gtv.Null(), nil
	}
	if gv, ok := v.(gtv.Value); ok {
		return gv, nil
	}
	return reflectToGTV(reflect.ValueOf(v))
}

type fieldTag struct {
	name       string
	skip       bool
	bigint     bool
	bigdecimal bool
}

func parseTag(raw string, fallback string) fieldTag {
	if raw == "" {
		return fieldTag{name: fallback}
	}
	name := fallback
	bigint := false
	bigdecimal := false
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			part := raw[start:i]
			switch {
			case start == 0:
				if part == "-" {
					return fieldTag{skip: true}
				}
				if part != "" {
					name = part
				}
			case part == "bigint":
				bigint = true
			case part == "bigdecimal":
				bigdecimal = true
			}
			start = i + 1
		}
	}
	return fieldTag{name: name, bigint: bigint, bigdecimal: bigdecimal}
}

func reflectToGTV(rv reflect.Value) (gtv.Value, error) {
	if gv, ok := rv.Interface().(gtv.Value); ok {
		return gv, nil
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return gtv.Null(), nil
		}
		return reflectToGTV(rv.Elem())

	case reflect.String:
		return gtv.Text(rv.String()), nil

	case reflect.Bool:
		return gtv.Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return gtv.Int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return gtv.Value{}, postchainerr.Wrap(postchainerr.ErrIntegerOverflow, "field value %d overflows signed 64 bits", u)
		}
		return gtv.Int(int64(u)), nil

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if rv.Kind() == reflect.Array {
				b := make([]byte, rv.Len())
				for i := range b {
					b[i] = byte(rv.Index(i).Uint())
				}
				return gtv.Bytes(b), nil
			}
			return gtv.Bytes(rv.Bytes()), nil
		}
		items := make([]gtv.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := reflectToGTV(rv.Index(i))
			if err != nil {
				return gtv.Value{}, err
			}
			items[i] = item
		}
		return gtv.Array(items...), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return gtv.Value{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "map key type %s is not string", rv.Type().Key())
		}
		entries := make([]gtv.DictEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val, err := reflectToGTV(iter.Value())
			if err != nil {
				return gtv.Value{}, err
			}
			entries = append(entries, gtv.DictEntry{Key: iter.Key().String(), Value: val})
		}
		return gtv.NewDict(entries...)

	case reflect.Struct:
		if bi, ok := rv.Interface().(big.Int); ok {
			return gtv.BigInt(&bi), nil
		}
		return structToGTV(rv)

	default:
		return gtv.Value{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "unsupported field kind %s", rv.Kind())
	}
}

func structToGTV(rv reflect.Value) (gtv.Value, error) {
	t := rv.Type()
	entries := make([]gtv.DictEntry, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}
		tag := parseTag(sf.Tag.Get("gtv"), sf.Name)
		if tag.skip {
			continue
		}
		fv := rv.Field(i)
		var val gtv.Value
		var err error
		switch {
		case tag.bigint:
			val, err = bigFieldToGTV(fv)
		case tag.bigdecimal:
			val, err = decimalFieldToGTV(fv)
		default:
			val, err = reflectToGTV(fv)
		}
		if err != nil {
			return gtv.Value{}, postchainerr.Wrap(err, "field %s", sf.Name)
		}
		entries = append(entries, gtv.DictEntry{Key: tag.name, Value: val})
	}
	return gtv.NewDict(entries...)
}

func decimalFieldToGTV(fv reflect.Value) (gtv.Value, error) {
	s, ok := fv.Interface().(string)
	if !ok {
		return gtv.Value{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "bigdecimal tag on non-string field of type %s", fv.Type())
	}
	return gtv.Decimal(s)
}

func bigFieldToGTV(fv reflect.Value) (gtv.Value, error) {
	switch p := fv.Interface().(type) {
	case *big.Int:
		if p == nil {
			return gtv.Null(), nil
		}
		return gtv.BigInt(p), nil
	case big.Int:
		return gtv.BigInt(&p), nil
	default:
		return gtv.Value{}, postchainerr.Wrap(postchainerr.ErrInvalidKey, "bigint tag on non-big.Int field of type %s", fv.Type())
	}
}

// QueryBody builds the {"type": name, ...args} Dict shape Postchain query
// requests use, converting each argument with ToGTV.
func QueryBody(name string, args map[string]interface{}) (gtv.Value, error) {
	entries := make([]gtv.DictEntry, 0, len(args)+1)
	entries = append(entries, gtv.DictEntry{Key: "type", Value: gtv.Text(name)})
	for k, v := range args {
		val, err := ToGTV(v)
		if err != nil {
			return gtv.Value{}, postchainerr.Wrap(err, "query arg %q", k)
		}
		entries = append(entries, gtv.DictEntry{Key: k, Value: val})
	}
	return gtv.NewDict(entries...)
}
