package trainer

import (
	"fmt"

	"github.com/lox/rangedrill/internal/actions"
)

// Feedback titles.
const (
	TitleCorrect   = "CORRECT"
	TitleIncorrect = "INCORRECT"
)

// Feedback is the display content built from one verdict. It is derived
// purely from the verdict: the same input always yields the same output.
type Feedback struct {
	Title string
	// Detail lines in presentation order.
	Detail []string
	// EmphasizedAction is the reference-correct action, the one the UI
	// visually distinguishes among the permitted actions.
	EmphasizedAction string
}

// FormatFeedback turns a verdict into display content.
func FormatFeedback(v Verdict) Feedback {
	fb := Feedback{EmphasizedAction: v.ActualAction}

	if v.Correct {
		fb.Title = TitleCorrect
		if v.UserAction == actions.Fold {
			fb.Detail = append(fb.Detail, "Right, that hand is a fold.")
		} else {
			fb.Detail = append(fb.Detail, fmt.Sprintf("Right, %s is the correct play.", v.UserAction))
		}
		if v.BottomOfRange != "" {
			fb.Detail = append(fb.Detail,
				fmt.Sprintf("Bottom of the %s range: %s", v.ActualAction, v.BottomOfRange))
		}
		return fb
	}

	fb.Title = TitleIncorrect
	fb.Detail = append(fb.Detail, fmt.Sprintf("You chose %s.", v.UserAction))
	fb.Detail = append(fb.Detail, fmt.Sprintf("The correct play is %s.", v.ActualAction))
	if v.ClosestHand != "" {
		fb.Detail = append(fb.Detail, fmt.Sprintf("Closest hand in range: %s", v.ClosestHand))
	}
	return fb
}
