package review

import (
	"errors"

	"github.com/dshills/guardian/internal/render"
)

// Mode identifies how the code was collected.
type Mode string

const (
	ModePaste  Mode = "paste"
	ModeUpload Mode = "upload"
)

// Request is one review job.
type Request struct {
	Mode    Mode
	Code    string
	Context string
	Files   []string
}

// Timing records where a review spent its time.
type Timing struct {
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Result is a completed review.
type Result struct {
	ID         string        `json:"id"`
	Mode       Mode          `json:"mode"`
	Provider   string        `json:"provider"`
	Model      string        `json:"model"`
	Files      []string      `json:"files,omitempty"`
	Feedback   string        `json:"feedback"`
	Blocks     render.Blocks `json:"blocks"`
	Cached     bool          `json:"cached"`
	TokensUsed int           `json:"tokensUsed"`
	Timing     Timing        `json:"timing"`
}

// ErrEmptyCode is matched by every input error that leaves nothing to send.
var ErrEmptyCode = errors.New("no code to review")

// InputError is a problem with the submitted code that the user has to fix.
// Its message is meant to be shown verbatim.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// Is reports InputErrors as ErrEmptyCode.
func (e *InputError) Is(target error) bool { return target == ErrEmptyCode }

var (
	ErrEmptyPaste = &InputError{Message: "Please paste some code to review."}
	ErrNoFiles    = &InputError{Message: "Please upload files or a folder to review. Note that only relevant source code files will be included."}
)
