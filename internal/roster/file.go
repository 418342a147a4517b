package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	"gopkg.in/yaml.v3"
)

// FileLoader reads a unit -> employees mapping from a JSON or YAML file. The
// format follows the file extension; anything but .yaml/.yml is read as JSON.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Load(_ context.Context) *payroll.LoadResult {
	result := &payroll.LoadResult{Source: l.path}

	data, err := os.ReadFile(l.path)
	if err != nil {
		result.Status = payroll.StatusNotFound
		if !errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("read source: %w", err)
		}
		result.Err = internal.ErrSourceNotFound.WithCause(err)
		return result
	}

	var ds payroll.Dataset
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		ds, err = DecodeYAML(data)
	default:
		ds, err = DecodeJSON(data)
	}
	if err != nil {
		result.Status = statusFor(err)
		result.Err = err
		return result
	}

	result.Status = payroll.StatusSuccess
	result.Dataset = ds
	return result
}

func statusFor(err error) payroll.LoadStatus {
	if errors.Is(err, internal.ErrInvalidRecord) {
		return payroll.StatusInvalidRecord
	}
	return payroll.StatusMalformed
}

func malformed(format string, args ...any) error {
	return internal.ErrSourceMalformed.WithCause(fmt.Errorf(format, args...))
}

// datasetBuilder keeps first-seen unit order; a repeated unit key replaces
// the employees of the earlier one.
type datasetBuilder struct {
	units []payroll.Unit
	index map[string]int
}

func newDatasetBuilder() *datasetBuilder {
	return &datasetBuilder{units: []payroll.Unit{}, index: map[string]int{}}
}

func (b *datasetBuilder) put(name string, employees []payroll.Employee) {
	if i, ok := b.index[name]; ok {
		b.units[i].Employees = employees
		return
	}
	b.index[name] = len(b.units)
	b.units = append(b.units, payroll.Unit{Name: name, Employees: employees})
}

func (b *datasetBuilder) dataset() payroll.Dataset {
	return payroll.Dataset{Units: b.units}
}

// DecodeJSON decodes the mapping with a token stream so that unit order is
// the order of the document.
func DecodeJSON(data []byte) (payroll.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return payroll.Dataset{}, malformed("json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return payroll.Dataset{}, malformed("json: top-level value must be an object")
	}

	b := newDatasetBuilder()
	var fieldErrors []internal.ValidationError
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return payroll.Dataset{}, malformed("json: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return payroll.Dataset{}, malformed("json: unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return payroll.Dataset{}, malformed("json: unit %q: %w", name, err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '[' {
			return payroll.Dataset{}, malformed("json: unit %q must be a list of employees", name)
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return payroll.Dataset{}, malformed("json: unit %q: %w", name, err)
		}

		records := make([]record, len(items))
		for i, item := range items {
			if err := json.Unmarshal(item, &records[i]); err != nil {
				return payroll.Dataset{}, invalidRecordf(fmt.Sprintf("%s[%d]", name, i), "%v", err)
			}
		}

		employees, errs := toEmployees(name, records)
		fieldErrors = append(fieldErrors, errs...)
		b.put(name, employees)
	}

	if _, err := dec.Token(); err != nil {
		return payroll.Dataset{}, malformed("json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return payroll.Dataset{}, malformed("json: unexpected data after top-level object")
	}

	if len(fieldErrors) > 0 {
		return payroll.Dataset{}, invalidRecord(fieldErrors)
	}
	return b.dataset(), nil
}

// DecodeYAML decodes the mapping through yaml.v3 nodes, which keep document
// order.
func DecodeYAML(data []byte) (payroll.Dataset, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return payroll.Dataset{}, malformed("yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return payroll.Dataset{}, malformed("yaml: empty document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return payroll.Dataset{}, malformed("yaml: top-level value must be a mapping")
	}

	b := newDatasetBuilder()
	var fieldErrors []internal.ValidationError
	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		value := doc.Content[i+1]
		if value.Kind != yaml.SequenceNode {
			return payroll.Dataset{}, malformed("yaml: unit %q must be a list of employees", name)
		}

		records := make([]record, len(value.Content))
		for j, item := range value.Content {
			if item.Kind != yaml.MappingNode {
				return payroll.Dataset{}, invalidRecordf(fmt.Sprintf("%s[%d]", name, j), "employee must be a mapping")
			}
			if err := item.Decode(&records[j]); err != nil {
				return payroll.Dataset{}, invalidRecordf(fmt.Sprintf("%s[%d]", name, j), "%v", err)
			}
		}

		employees, errs := toEmployees(name, records)
		fieldErrors = append(fieldErrors, errs...)
		b.put(name, employees)
	}

	if len(fieldErrors) > 0 {
		return payroll.Dataset{}, invalidRecord(fieldErrors)
	}
	return b.dataset(), nil
}
