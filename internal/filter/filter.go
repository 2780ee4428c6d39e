// Package filter owns the enable/value state of the three search
// filter axes (cameras, date range, time-of-day range) and normalizes
// them into a single backend-compatible payload.
//
// Each axis is a gate: while disabled it normalizes to its neutral
// value no matter what stale widget values it holds. Normalization runs
// on every mutation, not only on submit, so the payload observable at
// any moment is always consistent.
package filter

import "strings"

// AllCameras is the sentinel camera id meaning "no camera filter".
const AllCameras = "all"

// Payload is the normalized filter record consumed by the query
// composer. Nil pointers mean the axis contributes nothing.
type Payload struct {
	Cameras   []string
	StartDate *string // YYYY-MM-DD
	EndDate   *string // YYYY-MM-DD
	StartTime *string // HH:MM:SS
	EndTime   *string // HH:MM:SS
}

// cameraAxis is the camera selection gate.
type cameraAxis struct {
	enabled  bool
	selected map[string]bool
}

// dateAxis is the calendar date range gate.
type dateAxis struct {
	enabled bool
	start   string
	end     string
}

// timeAxis is the wall-clock time range gate.
type timeAxis struct {
	enabled bool
	start   string
	end     string
}

// Model holds the filter state. One writer (the UI), any number of
// read-only observers.
type Model struct {
	roster  []string
	cameras cameraAxis
	dates   dateAxis
	times   timeAxis

	payload Payload
	warning string

	// OnChange, when set, is invoked with the freshly normalized
	// payload after every mutation.
	OnChange func(Payload)
}

// New creates a Model with all axes disabled. roster is the fixed set
// of selectable camera ids, in display order.
func New(roster []string) *Model {
	m := &Model{
		roster:  roster,
		cameras: cameraAxis{selected: make(map[string]bool)},
	}
	m.renormalize()
	return m
}

// Roster returns the selectable camera ids in display order.
func (m *Model) Roster() []string { return m.roster }

// SetCameraEnabled toggles the camera axis gate.
func (m *Model) SetCameraEnabled(on bool) {
	m.cameras.enabled = on
	m.renormalize()
}

// SetDateEnabled toggles the date axis gate.
func (m *Model) SetDateEnabled(on bool) {
	m.dates.enabled = on
	m.renormalize()
}

// SetTimeEnabled toggles the time axis gate.
func (m *Model) SetTimeEnabled(on bool) {
	m.times.enabled = on
	m.renormalize()
}

// ToggleCamera adds or removes a camera from the selection. No-op while
// the camera axis is disabled.
func (m *Model) ToggleCamera(id string) {
	if !m.cameras.enabled {
		return
	}
	if m.cameras.selected[id] {
		delete(m.cameras.selected, id)
	} else {
		m.cameras.selected[id] = true
	}
	m.renormalize()
}

// CameraSelected reports whether id is currently selected.
func (m *Model) CameraSelected(id string) bool { return m.cameras.selected[id] }

// CameraEnabled reports whether the camera axis gate is open.
func (m *Model) CameraEnabled() bool { return m.cameras.enabled }

// DateEnabled reports whether the date axis gate is open.
func (m *Model) DateEnabled() bool { return m.dates.enabled }

// TimeEnabled reports whether the time axis gate is open.
func (m *Model) TimeEnabled() bool { return m.times.enabled }

// SetStartDate sets the range start date (YYYY-MM-DD, "" clears).
func (m *Model) SetStartDate(v string) {
	m.dates.start = strings.TrimSpace(v)
	m.renormalize()
}

// SetEndDate sets the range end date (YYYY-MM-DD, "" clears).
func (m *Model) SetEndDate(v string) {
	m.dates.end = strings.TrimSpace(v)
	m.renormalize()
}

// SetStartTime sets the range start time ("HH:MM" or "HH:MM:SS", "" clears).
func (m *Model) SetStartTime(v string) {
	m.times.start = strings.TrimSpace(v)
	m.renormalize()
}

// SetEndTime sets the range end time ("HH:MM" or "HH:MM:SS", "" clears).
func (m *Model) SetEndTime(v string) {
	m.times.end = strings.TrimSpace(v)
	m.renormalize()
}

// StartDate returns the raw (unnormalized) start date widget value.
func (m *Model) StartDate() string { return m.dates.start }

// EndDate returns the raw end date widget value.
func (m *Model) EndDate() string { return m.dates.end }

// StartTime returns the raw start time widget value.
func (m *Model) StartTime() string { return m.times.start }

// EndTime returns the raw end time widget value.
func (m *Model) EndTime() string { return m.times.end }

// Payload returns the current normalized filter payload.
func (m *Model) Payload() Payload { return m.payload }

// Warning returns the advisory validation warning, or "" when the
// state is clean. It never blocks normalization of the other axes.
func (m *Model) Warning() string { return m.warning }

func (m *Model) renormalize() {
	m.payload = Payload{
		Cameras: m.cameras.normalize(m.roster),
	}
	m.warning = ""

	start, end, warn := m.dates.normalize()
	m.payload.StartDate = start
	m.payload.EndDate = end
	if warn != "" {
		m.warning = warn
	}

	m.payload.StartTime, m.payload.EndTime = m.times.normalize()

	if m.OnChange != nil {
		m.OnChange(m.payload)
	}
}

// normalize returns the selected cameras in roster order, or the "all"
// sentinel when the axis is disabled or the selection is empty.
func (a cameraAxis) normalize(roster []string) []string {
	if !a.enabled || len(a.selected) == 0 {
		return []string{AllCameras}
	}
	out := make([]string, 0, len(a.selected))
	for _, id := range roster {
		if a.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// normalize returns the date range, withholding it with a warning when
// exactly one endpoint is set.
func (a dateAxis) normalize() (start, end *string, warning string) {
	if !a.enabled {
		return nil, nil, ""
	}
	switch {
	case a.start != "" && a.end != "":
		return &a.start, &a.end, ""
	case a.start == "" && a.end == "":
		return nil, nil, ""
	default:
		return nil, nil, "Select both start and end dates"
	}
}

// normalize returns the time range with each value padded to
// HH:MM:SS. The padding is mandatory before transmission.
func (a timeAxis) normalize() (start, end *string) {
	if !a.enabled {
		return nil, nil
	}
	if a.start != "" {
		v := PadTime(a.start)
		start = &v
	}
	if a.end != "" {
		v := PadTime(a.end)
		end = &v
	}
	return start, end
}

// PadTime right-pads a "HH:MM" value with ":00" to second resolution.
// Values already at full length pass through unchanged.
func PadTime(v string) string {
	if len(v) < 8 {
		return v + ":00"
	}
	return v
}
