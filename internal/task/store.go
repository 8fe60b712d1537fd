package task

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrNotFound is returned by index-addressed operations on a missing index.
var ErrNotFound = errors.New("not found")

// IndexError reports an index that is not live in the store.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task %d: %s", e.Index, ErrNotFound)
}

// Unwrap returns ErrNotFound.
func (e *IndexError) Unwrap() error {
	return ErrNotFound
}

// Store is the collection of all tasks for one data file.
// The zero value is an empty store ready to use.
type Store struct {
	XMLName xml.Name `json:"-" toml:"-" yaml:"-" xml:"tasks"`
	Tasks   []Task   `json:"tasks" toml:"tasks" yaml:"tasks" xml:"task"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Tasks: []Task{}}
}

// MarshalJSON writes an empty store as "tasks": [] rather than null.
func (s Store) MarshalJSON() ([]byte, error) {
	type plain Store
	p := plain(s)
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	return json.Marshal(p)
}

// Add inserts a new pending task at the smallest free index and returns it.
func (s *Store) Add(name, description string) Task {
	t := New(name, description)
	t.Index = s.availableIndex()

	pos := slices.IndexFunc(s.Tasks, func(other Task) bool {
		return other.Index > t.Index
	})
	if pos < 0 {
		pos = len(s.Tasks)
	}
	s.Tasks = slices.Insert(s.Tasks, pos, t)
	return t
}

// Get returns the task at index.
func (s *Store) Get(index int) (Task, error) {
	pos := s.find(index)
	if pos < 0 {
		return Task{}, &IndexError{Index: index}
	}
	return s.Tasks[pos], nil
}

// Remove deletes the task at index and returns it. The index becomes
// available to the next Add.
func (s *Store) Remove(index int) (Task, error) {
	pos := s.find(index)
	if pos < 0 {
		return Task{}, &IndexError{Index: index}
	}
	removed := s.Tasks[pos]
	s.Tasks = slices.Delete(s.Tasks, pos, pos+1)
	return removed, nil
}

// Toggle flips the completion flag of the task at index and returns the
// updated task.
func (s *Store) Toggle(index int) (Task, error) {
	pos := s.find(index)
	if pos < 0 {
		return Task{}, &IndexError{Index: index}
	}
	s.Tasks[pos].Completed = !s.Tasks[pos].Completed
	return s.Tasks[pos], nil
}

// List returns the live (index, task) pairs in ascending index order.
// The sequence may be ranged over any number of times.
func (s *Store) List() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		tasks := s.Tasks
		if !slices.IsSortedFunc(tasks, compareIndex) {
			tasks = slices.SortedFunc(slices.Values(s.Tasks), compareIndex)
		}
		for _, t := range tasks {
			if !yield(t.Index, t) {
				return
			}
		}
	}
}

// Normalize sorts the tasks by index and replaces a nil slice with an
// empty one, so every format writes a tasks key in ascending order.
func (s *Store) Normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	slices.SortFunc(s.Tasks, compareIndex)
}

// Len returns the number of live tasks.
func (s *Store) Len() int {
	return len(s.Tasks)
}

// IsEmpty reports whether the store has no tasks.
func (s *Store) IsEmpty() bool {
	return len(s.Tasks) == 0
}

// Clear discards every task. The next Add is assigned index 0.
func (s *Store) Clear() {
	s.Tasks = []Task{}
}

// Equal reports whether both stores hold the same tasks under the same
// indices. Record order and nil versus empty are ignored.
func (s *Store) Equal(other *Store) bool {
	if s.Len() != other.Len() {
		return false
	}
	for index, t := range s.List() {
		o, err := other.Get(index)
		if err != nil || o != t {
			return false
		}
	}
	return true
}

func (s *Store) find(index int) int {
	return slices.IndexFunc(s.Tasks, func(t Task) bool {
		return t.Index == index
	})
}

// availableIndex returns the smallest non-negative index not in use.
func (s *Store) availableIndex() int {
	used := make(map[int]struct{}, len(s.Tasks))
	for _, t := range s.Tasks {
		used[t.Index] = struct{}{}
	}
	index := 0
	for {
		if _, ok := used[index]; !ok {
			return index
		}
		index++
	}
}

func compareIndex(a, b Task) int {
	return a.Index - b.Index
}
