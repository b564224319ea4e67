package domain

// EntryAction identifies a workflow transition on a budget entry.
type EntryAction string

const (
	ActionSubmitForApproval EntryAction = "submit_for_approval"
	ActionApprove           EntryAction = "approve"
	ActionReject            EntryAction = "reject"
	ActionPost              EntryAction = "post"
)

// ActionSeverity is the visual intent a client should render an action with.
type ActionSeverity string

const (
	SeverityPrimary ActionSeverity = "primary"
	SeveritySuccess ActionSeverity = "success"
	SeverityDanger  ActionSeverity = "danger"
	SeverityWarning ActionSeverity = "warning"
)

// AvailableAction describes one legal next action on an entry for a given actor.
type AvailableAction struct {
	Action          EntryAction    `json:"action"`
	Label           string         `json:"label"`
	Severity        ActionSeverity `json:"severity"`
	RequiresComment bool           `json:"requiresComment"`
}

// workflowTransitions is the single source of truth for legal status moves.
// An action missing for a source status is illegal from that status.
var workflowTransitions = map[EntryStatus]map[EntryAction]EntryStatus{
	StatusDraft: {
		ActionSubmitForApproval: StatusPendingApproval,
	},
	StatusPendingApproval: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	StatusApproved: {
		ActionPost: StatusPosted,
	},
	StatusRejected: {
		ActionSubmitForApproval: StatusPendingApproval,
	},
}

// NextStatus returns the status an action leads to from the given source
// status, and whether the transition is legal at all.
func NextStatus(from EntryStatus, action EntryAction) (EntryStatus, bool) {
	next, ok := workflowTransitions[from][action]
	return next, ok
}

// capability names the kind of actor an action requires. Admins hold every
// capability implicitly.
type capability int

const (
	capCreator capability = iota // entry creator
	capSpendingAuthority
	capAccountant // realization officer
)

// actionSpec binds a transition to the capability that unlocks it plus its
// presentation attributes. Gating for the catalog, CanEditEntry and
// CanDeleteEntry all derive from this one table so they cannot diverge.
type actionSpec struct {
	Action          EntryAction
	Requires        capability
	Label           string
	Severity        ActionSeverity
	RequiresComment bool
}

// statusActions lists, in display order, the actions offered from each status.
// Every action here must also appear in workflowTransitions for the same
// source status; the executor still validates independently.
var statusActions = map[EntryStatus][]actionSpec{
	StatusDraft: {
		{Action: ActionSubmitForApproval, Requires: capCreator, Label: "Submit for approval", Severity: SeverityPrimary},
	},
	StatusPendingApproval: {
		{Action: ActionApprove, Requires: capSpendingAuthority, Label: "Approve", Severity: SeveritySuccess, RequiresComment: true},
		{Action: ActionReject, Requires: capSpendingAuthority, Label: "Reject", Severity: SeverityDanger, RequiresComment: true},
	},
	StatusApproved: {
		{Action: ActionPost, Requires: capAccountant, Label: "Post to ledger", Severity: SeveritySuccess, RequiresComment: true},
	},
	StatusRejected: {
		{Action: ActionSubmitForApproval, Requires: capCreator, Label: "Resubmit for approval", Severity: SeverityPrimary},
	},
	StatusPosted: {}, // terminal, nothing is ever offered
}

// hasCapability reports whether the actor satisfies the given capability for
// this entry. Admins always do.
func hasCapability(cap capability, entry *BudgetEntry, role OrganizationRole, userID string) bool {
	if role == RoleAdmin {
		return true
	}
	switch cap {
	case capCreator:
		return entry.CreatedBy == userID
	case capSpendingAuthority:
		return role == RoleSpendingAuthority
	case capAccountant:
		return role == RoleAccountant
	}
	return false
}

// AvailableActions produces the ordered list of actions the actor may take on
// the entry right now. A nil entry yields an empty list.
func AvailableActions(entry *BudgetEntry, role OrganizationRole, userID string) []AvailableAction {
	actions := []AvailableAction{}
	if entry == nil {
		return actions
	}
	for _, spec := range statusActions[entry.Status] {
		if !hasCapability(spec.Requires, entry, role, userID) {
			continue
		}
		actions = append(actions, AvailableAction{
			Action:          spec.Action,
			Label:           spec.Label,
			Severity:        spec.Severity,
			RequiresComment: spec.RequiresComment,
		})
	}
	return actions
}

// CanEditEntry reports whether the actor may edit the entry's own fields
// (description, amount, date). It is total over all five statuses.
func CanEditEntry(entry *BudgetEntry, role OrganizationRole, userID string) bool {
	if entry == nil {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	switch entry.Status {
	case StatusDraft, StatusRejected:
		return entry.CreatedBy == userID
	case StatusPendingApproval, StatusApproved:
		return role == RoleSpendingAuthority
	case StatusPosted:
		return false
	}
	return false
}

// CanDeleteEntry reports whether the actor may delete the entry. Admins may
// always delete; everyone else only their own drafts.
func CanDeleteEntry(entry *BudgetEntry, role OrganizationRole, userID string) bool {
	if entry == nil {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	return entry.Status == StatusDraft && entry.CreatedBy == userID
}
