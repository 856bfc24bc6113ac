package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/circlepack/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2   // bad flags, config, scene or format
	ExitTickLimit   = 3   // the packing did not settle in time
	ExitInterrupted = 130 // shell convention for SIGINT
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidScene, errors.ErrCodeFileNotFound:
		return ExitUsage
	case errors.ErrCodeTimeout:
		return ExitTickLimit
	default:
		return ExitFailure
	}
}

// ReportError writes err for a human. Interrupts print nothing; the shell
// already shows ^C.
func ReportError(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	switch errors.GetCode(err) {
	case errors.ErrCodeTimeout:
		fmt.Fprintln(w, "  "+StyleDim.Render("raise --tick-limit, or lower --max-attempts so fewer circles are placed"))
	case errors.ErrCodeInvalidConfig:
		if hint := fieldHint(errors.FieldOf(err)); hint != "" {
			fmt.Fprintln(w, "  "+StyleDim.Render(hint))
		}
	}
}

// configFlags maps [packing] keys to the flags that override them.
var configFlags = map[string]string{
	"size":             "size",
	"border":           "border",
	"seed_radius":      "seed-radius",
	"max_attempts":     "max-attempts",
	"target_per_frame": "per-frame",
	"growth_step":      "growth-step",
	"max_radius":       "max-radius",
}

func fieldHint(field string) string {
	if field == "" {
		return ""
	}
	if flag, ok := configFlags[field]; ok {
		return "check --" + flag + " or " + field + " under [packing] in the config file"
	}
	return "check " + field + " under [packing] in the config file"
}
