package roster

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/acts/pkg/model"
)

// Roster is the parsed content of a roster file
type Roster struct {
	People []Person `yaml:"people"`
}

// Person is a roster entry. Duties may be listed in any order.
type Person struct {
	Name   string `yaml:"name"`
	Duties []Duty `yaml:"duties"`
}

// Duty is one assignment of a roster entry
type Duty struct {
	Rank  string `yaml:"rank"`
	Title string `yaml:"title"`
	Start Date   `yaml:"start"`
}

// Date is a calendar date in a roster file. Both YYYY-MM-DD and RFC 3339
// values are accepted.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	d.Time = t
	return nil
}

// Parse reads a roster. Unknown keys are rejected.
func Parse(r io.Reader) (*Roster, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var roster Roster
	if err := dec.Decode(&roster); err != nil {
		if errors.Is(err, io.EOF) {
			return &roster, nil
		}
		return nil, err
	}
	if err := roster.check(); err != nil {
		return nil, err
	}
	return &roster, nil
}

// check rejects rosters the importer could never apply: blank names and a
// person listed twice.
func (r *Roster) check() error {
	seen := make(map[string]bool, len(r.People))
	for i, p := range r.People {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("people[%d]: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("people[%d]: %q is listed more than once", i, name)
		}
		seen[name] = true
	}
	return nil
}

// sortedDuties returns p's duties ordered by start date, oldest first.
func (p Person) sortedDuties() []Duty {
	duties := make([]Duty, len(p.Duties))
	copy(duties, p.Duties)
	sort.SliceStable(duties, func(i, j int) bool {
		return duties[i].Start.Before(duties[j].Start.Time)
	})
	return duties
}
