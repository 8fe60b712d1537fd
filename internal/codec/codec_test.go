package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/nibzard/todo-go/internal/task"
)

func sparseStore() *task.Store {
	return &task.Store{Tasks: []task.Task{
		{Index: 0, Name: "buy milk", Description: "2%"},
		{Index: 2, Name: "call mom", Description: "", Completed: true},
		{Index: 5, Name: "ship <release> & \"tag\"", Description: "line one\nline two"},
	}}
}

func TestRoundTrip(t *testing.T) {
	stores := map[string]*task.Store{
		"empty":     task.NewStore(),
		"zero":      {},
		"sparse":    sparseStore(),
		"single":    {Tasks: []task.Task{{Index: 0, Name: "only"}}},
		"unordered": {Tasks: []task.Task{{Index: 3, Name: "c"}, {Index: 1, Name: "a"}}},
	}

	for _, f := range Formats() {
		for name, store := range stores {
			t.Run(string(f)+"/"+name, func(t *testing.T) {
				data, err := Encode(store, f)
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				got, err := Decode[task.Store](data, f)
				if err != nil {
					t.Fatalf("Decode failed: %v\n%s", err, data)
				}
				if !got.Equal(store) {
					t.Errorf("round trip mismatch:\n got  %+v\n want %+v\n%s", got.Tasks, store.Tasks, data)
				}
			})
		}
	}
}

func TestEncodeJSONShape(t *testing.T) {
	s := task.NewStore()
	s.Add("buy milk", "2%")
	if _, err := s.Toggle(0); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	data, err := Encode(s, JSON)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var doc struct {
		Tasks []map[string]any `json:"tasks"`
	}
	if err := DecodeInto(data, JSON, &doc); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if len(doc.Tasks) != 1 {
		t.Fatalf("records: got %d, want 1", len(doc.Tasks))
	}
	rec := doc.Tasks[0]
	if rec["name"] != "buy milk" {
		t.Errorf("name: got %v, want buy milk", rec["name"])
	}
	if rec["completed"] != true {
		t.Errorf("completed: got %v, want true", rec["completed"])
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestEncodeEmptyJSONWritesArray(t *testing.T) {
	data, err := Encode(&task.Store{}, JSON)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(data), `"tasks": []`) {
		t.Errorf("expected empty array, got %s", data)
	}
}

func TestEncodeXMLRoot(t *testing.T) {
	data, err := Encode(sparseStore(), XML)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"<?xml", "<tasks>", `<task index="2">`, "<completed>true</completed>"} {
		if !strings.Contains(out, want) {
			t.Errorf("XML output missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeError(t *testing.T) {
	// XML needs a single named root element; a bare map has none.
	_, err := Encode(map[string]int{"a": 1}, XML)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Format != XML {
		t.Errorf("expected *Error for xml, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"malformed toml", TOML, "[[tasks]\nname = "},
		{"malformed json", JSON, `{"tasks": [`},
		{"malformed yaml", YAML, "tasks: [\n  - {index: 0"},
		{"malformed xml", XML, "<tasks><task>"},
		{"type mismatch json", JSON, `{"tasks": [{"index": "zero", "name": "a", "description": "", "completed": false}]}`},
		{"type mismatch toml", TOML, "[[tasks]]\nindex = 0\nname = 'a'\ndescription = ''\ncompleted = 'yes'\n"},
		{"duplicate index yaml", YAML, "tasks:\n  - {index: 1, name: a, description: '', completed: false}\n  - {index: 1, name: b, description: '', completed: true}\n"},
		{"duplicate index xml", XML, `<tasks><task index="1"><name>a</name><description></description><completed>false</completed></task><task index="1"><name>b</name><description></description><completed>false</completed></task></tasks>`},
		{"negative index json", JSON, `{"tasks": [{"index": -4, "name": "a", "description": "", "completed": false}]}`},
		{"negative index xml", XML, `<tasks><task index="-4"><name>a</name><description></description><completed>false</completed></task></tasks>`},
		{"wrong xml root", XML, "<todo><task index=\"0\"><name>a</name></task></todo>"},
		{"empty json", JSON, ""},
		{"empty toml", TOML, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[task.Store]([]byte(tt.data), tt.format)
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestDecodeMissingField(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   string
	}{
		{"no tasks key json", JSON, `{}`, "tasks"},
		{"no tasks key toml", TOML, "other = 1\n", "tasks"},
		{"no tasks key yaml", YAML, "other: 1\n", "tasks"},
		{"no name json", JSON, `{"tasks": [{"index": 0, "description": "", "completed": false}]}`, "name"},
		{"no completed json", JSON, `{"tasks": [{"index": 0, "name": "a", "description": ""}]}`, "completed"},
		{"no index json", JSON, `{"tasks": [{"name": "a", "description": "", "completed": false}]}`, "index"},
		{"no name toml", TOML, "[[tasks]]\nindex = 0\ndescription = ''\ncompleted = false\n", "name"},
		{"no completed toml", TOML, "[[tasks]]\nindex = 0\nname = 'a'\ndescription = ''\n", "completed"},
		{"no name yaml", YAML, "tasks:\n  - {index: 0, description: b, completed: false}\n", "name"},
		{"no completed yaml", YAML, "tasks:\n  - {index: 0, name: a, description: b}\n", "completed"},
		{"no description yaml", YAML, "tasks:\n  - {index: 0, name: a, completed: true}\n", "description"},
		{"no name xml", XML, `<tasks><task index="0"><description></description><completed>false</completed></task></tasks>`, "name"},
		{"no completed xml", XML, `<tasks><task index="0"><name>a</name><description></description></task></tasks>`, "completed"},
		{"no index xml", XML, `<tasks><task><name>a</name><description></description><completed>true</completed></task></tasks>`, "index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[task.Store]([]byte(tt.data), tt.format)
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v (tasks %+v)", err, got.Tasks)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeUnknownField(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"json", JSON, `{"tasks": [{"index": 0, "name": "a", "description": "", "completed": false, "bogus": 1}]}`},
		{"toml", TOML, "[[tasks]]\nindex = 0\nname = 'a'\ndescription = ''\ncompleted = false\nbogus = 1\n"},
		{"yaml", YAML, "tasks:\n  - {index: 0, name: a, description: '', completed: false, bogus: 1}\n"},
		{"xml element", XML, `<tasks><task index="0"><name>a</name><description></description><completed>false</completed><bogus>1</bogus></task></tasks>`},
		{"xml attribute", XML, `<tasks><task index="0" bogus="1"><name>a</name><description></description><completed>false</completed></task></tasks>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode[task.Store]([]byte(tt.data), tt.format); !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestDecodeEmptyTaskList(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{TOML, "tasks = []\n"},
		{JSON, `{"tasks": []}`},
		{YAML, "tasks: []\n"},
		{XML, "<tasks></tasks>"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Decode[task.Store]([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !got.IsEmpty() {
				t.Errorf("expected empty store, got %+v", got.Tasks)
			}
		})
	}
}

func TestDecodeSortsByIndex(t *testing.T) {
	data := `{"tasks": [
		{"index": 3, "name": "c", "description": "", "completed": false},
		{"index": 1, "name": "a", "description": "", "completed": true}
	]}`

	got, err := Decode[task.Store]([]byte(data), JSON)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got.Tasks) != 2 || got.Tasks[0].Index != 1 || got.Tasks[1].Index != 3 {
		t.Errorf("expected tasks sorted by index, got %+v", got.Tasks)
	}
}

func TestEncodeWritesAscendingIndex(t *testing.T) {
	store := &task.Store{Tasks: []task.Task{{Index: 3, Name: "zulu"}, {Index: 1, Name: "yankee"}}}

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(store, f)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			out := string(data)
			first, second := strings.Index(out, "yankee"), strings.Index(out, "zulu")
			if first < 0 || second < 0 || first > second {
				t.Errorf("expected index 1 before index 3:\n%s", out)
			}
		})
	}
}

func TestEncodeZeroStoreWritesTasksKey(t *testing.T) {
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(&task.Store{}, f)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !strings.Contains(string(data), "tasks") {
				t.Errorf("expected a tasks key:\n%s", data)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"toml", TOML, false},
		{"JSON", JSON, false},
		{" yaml ", YAML, false},
		{"xml", XML, false},
		{"csv", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q): expected ErrUnknownFormat, got %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := Encode(task.NewStore(), Format("csv")); !errors.Is(err, ErrEncode) {
		t.Errorf("Encode: expected ErrEncode, got %v", err)
	}
	if err := DecodeInto([]byte("x"), Format("csv"), &task.Store{}); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeInto: expected ErrDecode, got %v", err)
	}
}
