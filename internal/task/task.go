package task

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	completedSymbol = "✓"
	pendingSymbol   = "✗"
)

// Task represents a single to-do item.
type Task struct {
	Index       int    `json:"index" toml:"index" yaml:"index" xml:"index,attr"`
	Name        string `json:"name" toml:"name" yaml:"name" xml:"name"`
	Description string `json:"description" toml:"description" yaml:"description" xml:"description"`
	Completed   bool   `json:"completed" toml:"completed" yaml:"completed" xml:"completed"`
}

// xmlTask mirrors Task with optional fields so absent elements can be told
// apart from zero values.
type xmlTask struct {
	Index        *int       `xml:"index,attr"`
	Name         *string    `xml:"name"`
	Description  *string    `xml:"description"`
	Completed    *bool      `xml:"completed"`
	UnknownAttrs []xml.Attr `xml:",any,attr"`
	Unknown      []struct {
		XMLName xml.Name
	} `xml:",any"`
}

// UnmarshalXML decodes a <task> element, rejecting one that omits a field
// or carries an unknown one.
func (t *Task) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw xmlTask
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	var missing []string
	if raw.Index == nil {
		missing = append(missing, "index")
	}
	if raw.Name == nil {
		missing = append(missing, "name")
	}
	if raw.Description == nil {
		missing = append(missing, "description")
	}
	if raw.Completed == nil {
		missing = append(missing, "completed")
	}
	if len(missing) > 0 {
		return fmt.Errorf("task: missing %s", strings.Join(missing, ", "))
	}
	if len(raw.UnknownAttrs) > 0 {
		return fmt.Errorf("task %d: unknown attribute %s", *raw.Index, raw.UnknownAttrs[0].Name.Local)
	}
	if len(raw.Unknown) > 0 {
		return fmt.Errorf("task %d: unknown element %s", *raw.Index, raw.Unknown[0].XMLName.Local)
	}

	*t = Task{
		Index:       *raw.Index,
		Name:        *raw.Name,
		Description: *raw.Description,
		Completed:   *raw.Completed,
	}
	return nil
}

// New returns a pending task. The index is assigned when the task is added
// to a Store.
func New(name, description string) Task {
	return Task{
		Name:        name,
		Description: description,
	}
}

// Symbol returns the completion marker shown in listings.
func (t Task) Symbol() string {
	if t.Completed {
		return completedSymbol
	}
	return pendingSymbol
}

// Short returns the one-line form: "<name> - <symbol>".
func (t Task) Short() string {
	return fmt.Sprintf("%s - %s", t.Name, t.Symbol())
}

// String returns the multi-line form used by the long listing.
func (t Task) String() string {
	return fmt.Sprintf("Task Name   : %s\nDescription : %s\nCompleted   : %s\n",
		t.Name, t.Description, t.Symbol())
}
