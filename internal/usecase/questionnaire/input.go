package questionnaire

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/facetdex/internal/domain"
	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
)

// Input is a questionnaire payload split into scalar and list fields.
type Input struct {
	Scalars map[string]string
	Lists   map[string][]string
	// Moderated is nil when the payload leaves the flag unchanged.
	Moderated *bool
}

// nameKeys are the keys read from nested objects such as {"city": "Москва"}.
var nameKeys = []string{"name", "city", "label", "value"}

// DecodeInput converts a decoded JSON object. Strings, numbers and booleans become scalars,
// arrays become lists, nulls are skipped. Nested objects collapse to their name.
func DecodeInput(body map[string]any) (Input, error) {
	in := Input{
		Scalars: make(map[string]string),
		Lists:   make(map[string][]string),
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch k {
		case domrec.FieldModeration:
			b, ok := body[k].(bool)
			if !ok {
				return Input{}, fmt.Errorf("field %q must be a boolean: %w", k, domain.ErrInvalidRecord)
			}
			in.Moderated = &b
			continue
		case domrec.FieldID, domrec.FieldCreatedAt, domrec.FieldUpdatedAt, domrec.FieldDeleted:
			continue
		}

		switch v := body[k].(type) {
		case nil:
		case []any:
			list := make([]string, 0, len(v))
			for i, e := range v {
				s, err := scalar(e)
				if err != nil {
					return Input{}, fmt.Errorf("field %q[%d]: %w", k, i, err)
				}
				list = append(list, s)
			}
			in.Lists[k] = list
		default:
			s, err := scalar(v)
			if err != nil {
				return Input{}, fmt.Errorf("field %q: %w", k, err)
			}
			in.Scalars[k] = s
		}
	}
	return in, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return domrec.FormatBool(x), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case map[string]any:
		for _, k := range nameKeys {
			if s, ok := x[k].(string); ok {
				return s, nil
			}
		}
		return "", fmt.Errorf("object without a name: %w", domain.ErrInvalidRecord)
	}
	return "", fmt.Errorf("unsupported value %T: %w", v, domain.ErrInvalidRecord)
}
