package shell

import "github.com/andri/tdialog/pkg/dialog"

// Response is how a dialog was left, before it is mapped to a Result.
type Response int

const (
	// ResponseAffirmative is OK, Yes or Exit.
	ResponseAffirmative Response = iota
	// ResponseNegative is Cancel or No.
	ResponseNegative
	// ResponseClose closes the window without a choice.
	ResponseClose
	// ResponseHelp is the help button.
	ResponseHelp
	// ResponseExtra is the extra button.
	ResponseExtra
	// ResponseTimeout is the --timeout timer firing.
	ResponseTimeout
	// ResponseOther covers interrupts and failed runs.
	ResponseOther
)

// MapResponse converts a response to the dialog result.
func MapResponse(r Response) dialog.Result {
	switch r {
	case ResponseAffirmative:
		return dialog.ResultOK
	case ResponseNegative:
		return dialog.ResultCancel
	case ResponseClose:
		return dialog.ResultESC
	case ResponseHelp:
		return dialog.ResultHelp
	case ResponseExtra:
		return dialog.ResultExtra
	case ResponseTimeout:
		return dialog.ResultTimeout
	default:
		return dialog.ResultError
	}
}
