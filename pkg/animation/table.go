package animation

import "time"

// PhaseKey identifies a phase within a PhaseTable. Group and Shape are
// kept apart so keys containing separators never collide.
type PhaseKey struct {
	Group string
	Shape string
	Name  string
}

// PhaseTable owns phase run state on behalf of shapes. Entries are created
// lazily by Phase and live until deleted.
//
// PhaseTable is not safe for concurrent use.
type PhaseTable struct {
	phases map[PhaseKey]*Phase
}

// NewPhaseTable returns an empty table.
func NewPhaseTable() *PhaseTable {
	return &PhaseTable{phases: make(map[PhaseKey]*Phase)}
}

// Phase returns the phase for key, creating it with c and d on first use.
// An existing entry keeps its run state; its policy is updated to c and d.
func (t *PhaseTable) Phase(key PhaseKey, c Controller, d time.Duration) *Phase {
	if p, ok := t.phases[key]; ok {
		p.Controller, p.Duration = c, d
		return p
	}
	p := NewPhase(c, d)
	t.phases[key] = p
	return p
}

// Lookup returns the phase for key without creating it.
func (t *PhaseTable) Lookup(key PhaseKey) (*Phase, bool) {
	p, ok := t.phases[key]
	return p, ok
}

// Delete frees the phase for key.
func (t *PhaseTable) Delete(key PhaseKey) {
	delete(t.phases, key)
}

// DeleteShape frees every phase of shape within group.
func (t *PhaseTable) DeleteShape(group, shape string) {
	for k := range t.phases {
		if k.Group == group && k.Shape == shape {
			delete(t.phases, k)
		}
	}
}

// Len returns the number of live phases.
func (t *PhaseTable) Len() int {
	return len(t.phases)
}
