package task

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed store.schema.json
var storeSchema string

const storeSchemaURL = "store.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(storeSchemaURL, storeSchema)
})

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value, e.g. tasks[2].index
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateDocument checks an untyped store document, as parsed from TOML,
// JSON or YAML, against the embedded schema. It catches missing and unknown
// keys, which decoding into a Store would silently zero or drop.
func (s *Store) ValidateDocument(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile store schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return errors.Join(errs...)
	}
	return nil
}

// Validate rejects negative and duplicate indices. All problems found are
// joined into one error.
func (s *Store) Validate() error {
	var errs []error

	seen := make(map[int]int, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.Index < 0 {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("tasks[%d].index", i),
				Err:  fmt.Errorf("must be >= 0 but found %d", t.Index),
			})
			continue
		}
		if first, ok := seen[t.Index]; ok {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("tasks[%d].index", i),
				Err:  fmt.Errorf("duplicate index %d (first used by tasks[%d])", t.Index, first),
			})
			continue
		}
		seen[t.Index] = i
	}

	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath converts "/tasks/0/index" to "tasks[0].index".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}
