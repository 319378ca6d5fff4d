package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/script-fighter/core"
)

// UpdateFunc is a bound per-frame update callable
type UpdateFunc func(gameDelta, systemDelta float64)

// RenderFunc is a bound per-frame draw callable
type RenderFunc func()

// Funcs is the function-bag registration shape used by callers that do
// not construct a System instance, notably script-defined systems.
// Update and Render are both optional
type Funcs struct {
	Priority *int  // nil defaults to DefaultPriority
	Enabled  *bool // nil defaults to true
	Update   UpdateFunc
	Render   RenderFunc
	Data     map[string]any
	Version  int64
}

// Registration selects one of the two accepted shapes with an explicit
// discriminant: set System for an instance, or ID+Funcs for a function
// bag. Setting both or neither is an error
type Registration struct {
	System System

	ID    string
	Funcs *Funcs
}

// descriptor is the registry's internal record for one registered unit.
// Priority is immutable after creation; changing it requires
// unregister + register
type descriptor struct {
	id       string
	priority int
	enabled  bool
	update   UpdateFunc
	render   RenderFunc
	data     map[string]any
	version  int64
	source   System // nil for function-bag registrations
	seq      uint64 // registration order, tie-break for equal priorities
}

// isEnabled prefers the live instance flag so a system that disables
// itself through SetEnabled stops being dispatched without a registry
// call. Function-bag registrations have no instance and use the
// descriptor flag
func (d *descriptor) isEnabled() bool {
	if d.source != nil {
		return d.source.Enabled()
	}
	return d.enabled
}

type pendingOp struct {
	add    *descriptor // exactly one of add/remove is set
	remove string
}

// Registry owns system registration, ordering and per-frame dispatch.
//
// Dispatch is single-threaded: Update and Render run on the host logic
// goroutine once per frame. Registration calls may arrive from other
// goroutines (script reload) and are queued; queued operations are
// applied in FIFO order at the start of the next Update, never during
// iteration of the execution lists
type Registry struct {
	mu          sync.Mutex
	descriptors map[string]*descriptor
	pending     []pendingOp
	nextSeq     uint64

	// Execution lists, sorted ascending by priority, stable on ties.
	// Rebuilt only when membership changes. Touched exclusively by the
	// dispatch goroutine
	updateList []*descriptor
	renderList []*descriptor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*descriptor),
	}
}

// Register queues a system for addition. The system becomes active at
// the start of the next Update cycle, never the one in progress.
// Registering an id that already exists queues a replacement
func (r *Registry) Register(reg Registration) (bool, error) {
	d, err := resolve(reg)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	d.seq = r.nextSeq
	r.nextSeq++
	r.pending = append(r.pending, pendingOp{add: d})
	r.mu.Unlock()

	core.LogDebug("system %q queued for registration (priority %d)", d.id, d.priority)
	return true, nil
}

// resolve collapses either registration shape into one canonical
// descriptor. Shape checks happen here, once, not on every dispatch
func resolve(reg Registration) (*descriptor, error) {
	switch {
	case reg.System != nil && reg.Funcs != nil:
		return nil, fmt.Errorf("registration sets both System and Funcs: %w", ErrInvalidArgument)

	case reg.System != nil:
		s := reg.System
		if s.ID() == "" {
			return nil, fmt.Errorf("system id must be a non-empty string: %w", ErrInvalidArgument)
		}

		d := &descriptor{
			id:       s.ID(),
			priority: s.Priority(),
			enabled:  s.Enabled(),
			data:     s.Data(),
			version:  s.Version(),
			source:   s,
		}
		if u, ok := s.(Updater); ok {
			d.update = u.Update
		}
		if rd, ok := s.(Renderer); ok {
			d.render = rd.Render
		}
		if d.update == nil && d.render == nil {
			return nil, fmt.Errorf("system %q implements neither Updater nor Renderer: %w", s.ID(), ErrInvalidArgument)
		}
		return d, nil

	case reg.Funcs != nil:
		if reg.ID == "" {
			return nil, fmt.Errorf("function-bag registration requires a non-empty id: %w", ErrInvalidArgument)
		}

		f := reg.Funcs
		if f.Update == nil && f.Render == nil {
			return nil, fmt.Errorf("registration %q defines neither update nor render: %w", reg.ID, ErrInvalidArgument)
		}
		priority := DefaultPriority
		if f.Priority != nil {
			priority = *f.Priority
		}
		enabled := true
		if f.Enabled != nil {
			enabled = *f.Enabled
		}
		data := f.Data
		if data == nil {
			data = make(map[string]any)
		}

		return &descriptor{
			id:       reg.ID,
			priority: priority,
			enabled:  enabled,
			update:   f.Update,
			render:   f.Render,
			data:     data,
			version:  f.Version,
		}, nil

	default:
		return nil, fmt.Errorf("registration sets neither System nor Funcs: %w", ErrInvalidArgument)
	}
}

// Unregister queues removal of a system. Returns false for unknown ids.
// Like Register, removal takes effect at the next Update cycle
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isKnownLocked(id) {
		core.LogWarn("unregister of unknown system %q ignored", id)
		return false
	}

	r.pending = append(r.pending, pendingOp{remove: id})
	return true
}

// isKnownLocked reports whether id is live or will be after the pending
// queue drains. Caller holds r.mu
func (r *Registry) isKnownLocked(id string) bool {
	_, known := r.descriptors[id]
	for _, op := range r.pending {
		if op.add != nil && op.add.id == id {
			known = true
		} else if op.remove == id {
			known = false
		}
	}
	return known
}

// SetSystemEnabled toggles dispatch for a system without removing it
// from the execution lists. This mutation is immediate: it does not
// change list membership, so it is safe outside the drain point
func (r *Registry) SetSystemEnabled(id string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.descriptors[id]; ok {
		d.enabled = enabled
		if d.source != nil {
			d.source.SetEnabled(enabled)
		}
		return true
	}

	// Not yet drained: flip the queued descriptor so the toggle is not
	// lost between registration and the next cycle
	for i := len(r.pending) - 1; i >= 0; i-- {
		if op := r.pending[i]; op.add != nil && op.add.id == id {
			op.add.enabled = enabled
			if op.add.source != nil {
				op.add.source.SetEnabled(enabled)
			}
			return true
		}
	}

	core.LogWarn("enable toggle for unknown system %q ignored", id)
	return false
}

// GetSystem returns the status of a live system, or nil for unknown ids.
// Queued-but-undrained registrations are not visible
func (r *Registry) GetSystem(id string) *SystemStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.descriptors[id]
	if !ok {
		return nil
	}
	st := d.status()
	return &st
}

// ListSystems returns the status of every live system, ordered by
// priority with registration order breaking ties. No callables exposed
func (r *Registry) ListSystems() []SystemStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].priority != all[j].priority {
			return all[i].priority < all[j].priority
		}
		return all[i].seq < all[j].seq
	})

	out := make([]SystemStatus, len(all))
	for i, d := range all {
		out[i] = d.status()
	}
	return out
}

func (d *descriptor) status() SystemStatus {
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return SystemStatus{
		ID:        d.id,
		Priority:  d.priority,
		Enabled:   d.isEnabled(),
		HasUpdate: d.update != nil,
		HasRender: d.render != nil,
		DataKeys:  keys,
	}
}

// Update drains pending operations, then dispatches the update list in
// ascending priority order. A panic inside one system is logged and
// does not stop the remaining systems
func (r *Registry) Update(gameDelta, systemDelta float64) {
	r.drain()

	for _, d := range r.updateList {
		if d.isEnabled() && d.update != nil {
			r.dispatch(d, "update", func() { d.update(gameDelta, systemDelta) })
		}
	}
}

// Render dispatches the render list in ascending priority order with the
// same per-system isolation as Update. No drain happens here: Render
// uses the lists as the update-phase drain left them
func (r *Registry) Render() {
	for _, d := range r.renderList {
		if d.isEnabled() && d.render != nil {
			r.dispatch(d, "render", d.render)
		}
	}
}

// dispatch invokes one bound callable with panic isolation
func (r *Registry) dispatch(d *descriptor, phase string, call func()) {
	defer func() {
		if rec := recover(); rec != nil {
			core.LogError("system %q panicked during %s: %v", d.id, phase, rec)
		}
	}()
	call()
}

// drain applies all queued operations in FIFO order and resorts the
// execution lists. Runs once per cycle, before any dispatch, so no
// operation ever lands mid-iteration
func (r *Registry) drain() {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := r.pending
	r.pending = nil

	if len(ops) == 0 {
		return
	}

	changed := false
	for _, op := range ops {
		switch {
		case op.add != nil:
			r.applyAdd(op.add)
			changed = true
		case op.remove != "":
			if r.applyRemove(op.remove) {
				changed = true
			}
		}
	}

	if changed {
		sortDescriptors(r.updateList)
		sortDescriptors(r.renderList)
	}
}

// applyAdd and applyRemove run with r.mu held, inside drain only
func (r *Registry) applyAdd(d *descriptor) {
	if old, ok := r.descriptors[d.id]; ok {
		core.LogInfo("system %q replaced (version %d -> %d)", d.id, old.version, d.version)
		r.removeFromLists(old)
	}

	r.descriptors[d.id] = d

	if d.update != nil {
		r.updateList = append(r.updateList, d)
	}
	if d.render != nil {
		r.renderList = append(r.renderList, d)
	}
}

func (r *Registry) applyRemove(id string) bool {
	d, ok := r.descriptors[id]
	if !ok {
		return false
	}

	delete(r.descriptors, id)
	r.removeFromLists(d)
	return true
}

func (r *Registry) removeFromLists(d *descriptor) {
	r.updateList = filterOut(r.updateList, d)
	r.renderList = filterOut(r.renderList, d)
}

func filterOut(list []*descriptor, d *descriptor) []*descriptor {
	out := list[:0]
	for _, e := range list {
		if e != d {
			out = append(out, e)
		}
	}
	return out
}

// sortDescriptors orders ascending by priority; registration sequence
// breaks ties so same-priority systems run in registration order
func sortDescriptors(list []*descriptor) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
}
