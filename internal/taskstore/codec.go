package taskstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"checklist/internal/service"
)

// ErrDeserialization indicates the persisted blob could not be parsed into
// a valid task list.
var ErrDeserialization = errors.New("deserialization failure")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// notblank rejects empty and whitespace-only strings.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Encode serializes the list as a JSON array. An empty list encodes as [].
func Encode(list service.TaskList) (string, error) {
	if list == nil {
		list = service.TaskList{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a persisted blob.
//
// Unknown fields are ignored and a missing done flag defaults to false.
// Empty input and JSON null decode to an empty list. Anything else that is
// not an array of valid, uniquely identified records is rejected as a
// whole with ErrDeserialization.
func Decode(text string) (service.TaskList, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return service.TaskList{}, nil
	}

	var list service.TaskList
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if list == nil {
		list = service.TaskList{}
	}

	seen := make(map[string]struct{}, len(list))
	for i, t := range list {
		if err := validate.Struct(t); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDeserialization, i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrDeserialization, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return list, nil
}
