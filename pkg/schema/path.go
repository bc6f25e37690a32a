package schema

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ValidateAt validates only the value located at path inside value,
// against the sub-schema that root declares for that path. Paths use dot
// notation with bracketed indexes, e.g. "job.title" or "tags[2]".
func ValidateAt(ctx context.Context, root Schema, path string, value any, opts Options) (any, error) {
	sub, target, err := resolveAt(root, path, value)
	if err != nil {
		return nil, err
	}
	opts.Path = path
	return sub.Validate(ctx, target, opts)
}

// ValidateSyncAt is ValidateAt without a context.
func ValidateSyncAt(root Schema, path string, value any, opts Options) (any, error) {
	sub, target, err := resolveAt(root, path, value)
	if err != nil {
		return nil, err
	}
	opts.Path = path
	return sub.ValidateSync(target, opts)
}

// resolveAt walks schema and value together, segment by segment. Lazy
// schemas are resolved against the value reached so far, so a path can
// traverse deferred shapes.
func resolveAt(root Schema, path string, value any) (Schema, any, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	cur := root
	curVal := value
	for _, seg := range segments {
		for {
			lazy, ok := cur.(*LazySchema)
			if !ok {
				break
			}
			cur = lazy.Resolve(curVal)
		}

		switch s := cur.(type) {
		case *ObjectSchema:
			sub, ok := s.FieldSchema(seg)
			if !ok {
				return nil, nil, fmt.Errorf("%w: no property %q in path %q", ErrInvalidPath, seg, path)
			}
			cur = sub
			curVal, _ = LookupField(curVal, seg)
		case *ArraySchema:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 {
				return nil, nil, fmt.Errorf("%w: %q is not an array index in path %q", ErrInvalidPath, seg, path)
			}
			if s.Element() == nil {
				return nil, nil, fmt.Errorf("%w: array at %q has no element schema", ErrInvalidPath, seg)
			}
			cur = s.Element()
			curVal = elementAt(curVal, i)
		default:
			return nil, nil, fmt.Errorf("%w: cannot descend into %q", ErrInvalidPath, seg)
		}
	}
	return cur, curVal, nil
}

func elementAt(value any, i int) any {
	if value == nil {
		return nil
	}
	rv := deref(reflect.ValueOf(value))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	if i >= rv.Len() {
		return nil
	}
	return rv.Index(i).Interface()
}

// splitPath tokenizes "a.b[0].c" into ["a", "b", "0", "c"].
func splitPath(path string) []string {
	normalized := strings.NewReplacer("[", ".", "]", "").Replace(path)
	var segments []string
	for _, seg := range strings.Split(normalized, ".") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
