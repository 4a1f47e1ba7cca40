package page

import "fmt"

// State is the lifecycle state of a page device.
type State uint8

const (
	// Idle means no job is active. Only StartJob is valid.
	Idle State = iota

	// JobActive means a job is running with no page open.
	JobActive

	// PageOpen means drawing is permitted.
	PageOpen
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case JobActive:
		return "JobActive"
	case PageOpen:
		return "PageOpen"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Machine enforces the legal order of job and page operations:
//
//	Idle -> JobActive -> PageOpen -> JobActive -> ... -> Idle
//
// The zero value is an idle machine. Machine holds no resources; devices
// embed it and perform their own output around each transition.
type Machine struct {
	state State
	bound int // declared page count, 0 = unbounded
	pages int // pages started in the current job
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Pages returns the number of pages started in the current job. It keeps
// its value after EndJob until the next StartJob.
func (m *Machine) Pages() int {
	return m.pages
}

// Bound returns the page count declared at StartJob (0 = unbounded).
func (m *Machine) Bound() int {
	return m.bound
}

// StartJob moves Idle -> JobActive and resets the page counter.
func (m *Machine) StartJob(pageCount int) error {
	if m.state != Idle {
		return ErrJobActive
	}
	if pageCount < 0 {
		return ErrPageCount
	}
	m.state = JobActive
	m.bound = pageCount
	m.pages = 0
	return nil
}

// StartPage moves JobActive -> PageOpen and counts the page.
func (m *Machine) StartPage() error {
	switch m.state {
	case Idle:
		return ErrNoJob
	case PageOpen:
		return ErrPageOpen
	}
	if m.bound > 0 && m.pages >= m.bound {
		return fmt.Errorf("%w: %d of %d", ErrPageBound, m.pages+1, m.bound)
	}
	m.state = PageOpen
	m.pages++
	return nil
}

// EndPage moves PageOpen -> JobActive.
func (m *Machine) EndPage() error {
	if m.state != PageOpen {
		return ErrNoPage
	}
	m.state = JobActive
	return nil
}

// EndJob returns the machine to Idle. It reports whether a job was active;
// ending an idle machine is a no-op. Devices close any open page before
// calling EndJob.
func (m *Machine) EndJob() bool {
	if m.state == Idle {
		return false
	}
	m.state = Idle
	return true
}

// RequirePage returns ErrNoPage unless a page is open.
func (m *Machine) RequirePage() error {
	if m.state != PageOpen {
		return ErrNoPage
	}
	return nil
}

// RequireJob returns ErrNoJob when the machine is idle.
func (m *Machine) RequireJob() error {
	if m.state == Idle {
		return ErrNoJob
	}
	return nil
}

// PageRange returns the page range a job of pageCount pages prints. An
// unbounded job reports 0, 0.
func PageRange(pageCount int) (from, to int) {
	if pageCount <= 0 {
		return 0, 0
	}
	return 1, pageCount
}
