// Package decision resolves ambiguous choices the algorithm cannot make
// on its own. Answers are preloaded from a sheet; a decision with no
// preloaded answer takes the first alternative, so a missing or empty
// sheet keeps every run deterministic.
package decision

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"drainroute/pkg/tabular"
	"drainroute/pkg/view"
)

// Alternative is one selectable answer to a decision.
type Alternative struct {
	ID          uint
	Description string
}

// Maker hands out decision ids in call order and answers each decision
// from the preloaded table. Ids are positional: adding a Choose call
// site shifts every id after it, so the sheet belongs to one binary
// version.
type Maker struct {
	sink    view.Sink
	lastID  uint
	answers map[uint]uint
}

// NewMaker returns a Maker with no preloaded answers.
func NewMaker(sink view.Sink) *Maker {
	return &Maker{sink: sink, answers: make(map[uint]uint)}
}

// Load reads decision/alternative pairs from the sheet. A missing file is
// not an error: every decision then takes its default.
func (m *Maker) Load(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return tabular.ForEach(path, func(r *tabular.Row) error {
		decisionID, err := r.TakeUint("decision")
		if err != nil {
			return err
		}
		alternativeID, err := r.TakeUint("alternative")
		if err != nil {
			return err
		}
		m.answers[decisionID] = alternativeID
		return nil
	})
}

// Choose presents a decision and returns the id of the selected
// alternative. The preloaded answer wins when it names one of the
// offered alternatives; otherwise the first alternative is taken.
func (m *Maker) Choose(description string, alts []Alternative) uint {
	m.lastID++
	id := m.lastID

	m.sink.Info(fmt.Sprintf("decision %d: %s", id, description))
	for _, a := range alts {
		m.sink.Info(fmt.Sprintf("  %d: %s", a.ID, a.Description))
	}

	chosen := alts[0].ID
	if answer, ok := m.answers[id]; ok {
		for _, a := range alts {
			if a.ID == answer {
				chosen = answer
				break
			}
		}
	}
	m.sink.Info(fmt.Sprintf("  selected: %d", chosen))
	return chosen
}
