package domain

// JobAction is a user-triggerable lifecycle transition.
type JobAction string

// Job actions.
const (
	ActionAccept   JobAction = "accept"
	ActionComplete JobAction = "complete"
	ActionCancel   JobAction = "cancel"
	ActionReview   JobAction = "review"
)

// AllJobActions lists actions in display order.
var AllJobActions = []JobAction{ActionAccept, ActionComplete, ActionCancel, ActionReview}

// ParseJobAction returns the action for s, or false when unknown.
func ParseJobAction(s string) (JobAction, bool) {
	for _, a := range AllJobActions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Label returns the button text for the action.
func (a JobAction) Label() string {
	switch a {
	case ActionAccept:
		return "Accept job"
	case ActionComplete:
		return "Mark as completed"
	case ActionCancel:
		return "Cancel job"
	case ActionReview:
		return "Leave a review"
	default:
		return string(a)
	}
}

// Hints shown next to disabled or absent controls.
const (
	HintAwaitingVendor       = "Waiting for the vendor to accept"
	HintAwaitingClient       = "Waiting for the client..."
	HintAwaitingConfirmation = "Waiting for confirmation..."
)

// ActionState is one control in the job view.
type ActionState struct {
	Action  JobAction
	Enabled bool
	// Hint replaces the label while the control is disabled.
	Hint string
}

// Text returns the label or the hint, depending on Enabled.
func (s ActionState) Text() string {
	if !s.Enabled && s.Hint != "" {
		return s.Hint
	}
	return s.Action.Label()
}

// JobView is the display state of a job for one viewer.
// It is a pure function of the job and the viewer id.
type JobView struct {
	Job     Job
	Party   Party
	Status  JobStatus
	Label   string
	Hint    string
	Actions []ActionState
}

// NewJobView derives the view of job as seen by viewerID.
func NewJobView(job Job, viewerID int64) JobView {
	status := job.EffectiveStatus()
	v := JobView{
		Job:    job,
		Party:  job.PartyOf(viewerID),
		Status: status,
		Label:  status.Label(),
	}
	if v.Party == PartyNone {
		return v
	}

	switch status {
	case JobStatusPending:
		if v.Party == PartyVendor {
			v.Actions = append(v.Actions, ActionState{Action: ActionAccept, Enabled: true})
		} else {
			v.Hint = HintAwaitingVendor
		}
		v.Actions = append(v.Actions, ActionState{Action: ActionCancel, Enabled: true})

	case JobStatusInProgress:
		complete := ActionState{Action: ActionComplete, Enabled: !job.ConfirmedBy(v.Party)}
		if !complete.Enabled {
			complete.Hint = HintAwaitingConfirmation
			if v.Party == PartyVendor {
				complete.Hint = HintAwaitingClient
			}
			v.Hint = complete.Hint
		}
		v.Actions = append(v.Actions, complete, ActionState{Action: ActionCancel, Enabled: true})

	case JobStatusCompleted:
		if v.Party == PartyContractor {
			v.Actions = append(v.Actions, ActionState{Action: ActionReview, Enabled: true})
		}
	}
	return v
}

// State returns the control for action, if the view shows it.
func (v JobView) State(action JobAction) (ActionState, bool) {
	for _, s := range v.Actions {
		if s.Action == action {
			return s, true
		}
	}
	return ActionState{}, false
}

// Allowed reports whether action is shown and enabled.
func (v JobView) Allowed(action JobAction) bool {
	s, ok := v.State(action)
	return ok && s.Enabled
}

// EnabledActions returns the enabled actions in display order.
func (v JobView) EnabledActions() []JobAction {
	var out []JobAction
	for _, s := range v.Actions {
		if s.Enabled {
			out = append(out, s.Action)
		}
	}
	return out
}
