package page

import "errors"

// Sequencing errors. These report an operation called outside the state
// it is valid in.
var (
	// ErrJobActive is returned by StartJob when a job is already running.
	ErrJobActive = errors.New("page: job already active")

	// ErrNoJob is returned by StartPage when no job has been started.
	ErrNoJob = errors.New("page: no active job")

	// ErrPageOpen is returned by StartPage when the previous page has not
	// been ended.
	ErrPageOpen = errors.New("page: page already open")

	// ErrNoPage is returned by page-scoped queries and recorded by drawing
	// primitives used while no page is open.
	ErrNoPage = errors.New("page: no open page")

	// ErrPageBound is returned by StartPage when the job already produced
	// the number of pages declared at StartJob.
	ErrPageBound = errors.New("page: page count exceeds job bound")

	// ErrPageCount is returned by StartJob for a negative page count.
	ErrPageCount = errors.New("page: negative page count")

	// ErrNestedTransform is recorded when origin, scale or rotation is
	// changed while translations or clips are still pushed.
	ErrNestedTransform = errors.New("page: transform changed inside translate or clip scope")

	// ErrInvalidScale is recorded for non-positive scale factors.
	ErrInvalidScale = errors.New("page: scale factors must be positive")
)

// Stack-discipline errors. A page that ends with either stack unbalanced
// is repaired before the next page starts.
var (
	// ErrUnbalancedClip is returned by EndPage when clip pushes outnumber
	// pops on the page.
	ErrUnbalancedClip = errors.New("page: unbalanced clip stack at end of page")

	// ErrUnbalancedTranslate is returned by EndPage when translations
	// outnumber untranslations on the page.
	ErrUnbalancedTranslate = errors.New("page: unbalanced translate at end of page")
)

// ErrNoSink is returned by StartJob when the device has no output
// destination.
var ErrNoSink = errors.New("page: no output sink")
