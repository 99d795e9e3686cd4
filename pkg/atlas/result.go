package atlas

import (
	"fmt"

	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
)

// StatusOK marks a successful build.
const StatusOK errors.Code = "OK"

// Status is the outcome of a build: a code and a message meant for the
// status line.
type Status struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// OK reports whether the build succeeded.
func (s Status) OK() bool { return s.Code == StatusOK }

// Err returns the status as an error, or nil on success.
func (s Status) Err() error {
	if s.OK() {
		return nil
	}
	return errors.New(s.Code, "%s", s.Message)
}

func (s Status) String() string {
	if s.OK() {
		return s.Message
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

// Result is the output of Build.
//
// On success Canvas holds the atlas. After PACKING_EXHAUSTED it holds the
// partially packed atlas and Placements lists the images that made it. For
// every other failure Canvas is nil.
type Result struct {
	Canvas     *raster.Buffer
	Width      int
	Height     int
	Placements []Placement
	Status     Status
}

// OK reports whether the build succeeded.
func (r Result) OK() bool { return r.Status.OK() }

// Scaled returns a copy of the canvas resized to percent of its size. 100
// returns an identical copy.
func (r Result) Scaled(percent int) (*raster.Buffer, error) {
	if r.Canvas == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "No texture atlas to save!")
	}
	return raster.Scale(r.Canvas, percent)
}

func failed(err error) Result {
	return Result{Status: statusFrom(err)}
}

// statusFrom maps an error to a status. Buffer contract violations are
// reported as internal errors.
func statusFrom(err error) Status {
	if errors.IsDefect(err) {
		return Status{Code: errors.ErrCodeInternal, Message: "internal error: " + err.Error()}
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return Status{Code: code, Message: errors.UserMessage(err)}
}
