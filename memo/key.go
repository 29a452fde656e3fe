package memo

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/c360/memocache/errors"
)

// Key is a cache key derived from a function's argument list.
type Key string

// KeyFunc derives a cache key from an argument list. It returns an error
// wrapping errors.ErrUnhashableKey when the arguments cannot form a key;
// the memoizer then computes the result without caching it.
type KeyFunc func(args ...any) (Key, error)

// HashKey derives a key from the argument values alone. Arguments of
// different types that print identically (e.g. int(1) and int32(1)) map to
// the same key; use TypedKey when that distinction matters.
func HashKey(args ...any) (Key, error) {
	return makeKey(args, false)
}

// TypedKey derives a key from the argument values and their dynamic types,
// so equal values of different types occupy separate cache entries.
func TypedKey(args ...any) (Key, error) {
	return makeKey(args, true)
}

// keySeparator keeps adjacent arguments from running together. The unit
// separator never appears in Go's %#v output for comparable values.
const keySeparator = "\x1f"

func makeKey(args []any, typed bool) (Key, error) {
	var b strings.Builder

	for i, arg := range args {
		if i > 0 {
			b.WriteString(keySeparator)
		}

		if arg == nil {
			b.WriteString("<nil>")
			continue
		}

		if !reflect.ValueOf(arg).Comparable() {
			return "", errors.WrapInvalid(errors.ErrUnhashableKey, "memo", "makeKey",
				fmt.Sprintf("argument %d of type %T is not comparable", i, arg))
		}

		if typed {
			fmt.Fprintf(&b, "%T=%#v", arg, arg)
		} else {
			fmt.Fprintf(&b, "%#v", arg)
		}
	}

	return Key(b.String()), nil
}
