package tasks

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/worktravel/internal/model"
)

//go:embed tasks.schema.json
var taskSchemaJSON string

// taskSchema validates one record of the collection.
var taskSchema = jsonschema.MustCompileString("worktravel://tasks.schema.json", taskSchemaJSON)

func encodeTasks(tasks map[model.ID]model.Task) (string, error) {
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

func encodeMode(m model.Mode) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// decodeTasks decodes the collection blob record by record. Records that
// fail validation are left out and reported in the error; the valid ones
// are still returned. A blob that is not a JSON object yields no records.
func decodeTasks(blob string) (map[model.ID]model.Task, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: not an object", pointerPath(""))
	}

	tasks := make(map[model.ID]model.Task, len(raw))
	var errs []error
	for id, rec := range raw {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s: empty id", pointerPath("")))
			continue
		}
		if err := validateRecord(rec); err != nil {
			errs = append(errs, schemaError(id, err))
			continue
		}
		var t model.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pointerPath("/"+escapePointer(id)), err))
			continue
		}
		tasks[model.ID(id)] = t
	}
	if len(errs) > 0 {
		return tasks, fmt.Errorf("dropped %d invalid task record(s): %w", len(errs), errors.Join(errs...))
	}
	return tasks, nil
}

func validateRecord(rec json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(rec))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return taskSchema.Validate(doc)
}

func decodeMode(blob string) (model.Mode, error) {
	var m model.Mode
	if err := json.Unmarshal(bytes.TrimSpace([]byte(blob)), &m); err != nil {
		return model.Work, err
	}
	return m, nil
}

// schemaError flattens nested validation causes into one error per leaf,
// located under the record's id.
func schemaError(id string, err error) error {
	base := "/" + escapePointer(id)
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%s: %w", pointerPath(base), err)
	}
	var errs []error
	collectSchemaErrors(&errs, base, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, base string, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := strings.TrimPrefix(ve.InstanceLocation, "#")
		*errs = append(*errs, fmt.Errorf("%s: %s", pointerPath(base+loc), ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, base, cause)
	}
}

func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func pointerPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return "$"
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strconv.Quote(strings.ReplaceAll(p, "~0", "~"))
	}
	return "$[" + strings.Join(parts, "][") + "]"
}
