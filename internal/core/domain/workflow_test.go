package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inforlary/belkys-backend/internal/core/domain"
)

func makeEntry(status domain.EntryStatus, createdBy string) *domain.BudgetEntry {
	return &domain.BudgetEntry{
		EntryID:        "entry-1",
		OrganizationID: "org-1",
		EntryType:      domain.EntryTypeExpense,
		Status:         status,
		AuditFields: domain.AuditFields{
			CreatedBy: createdBy,
		},
	}
}

func TestNextStatus(t *testing.T) {
	testCases := []struct {
		name       string
		from       domain.EntryStatus
		action     domain.EntryAction
		wantStatus domain.EntryStatus
		wantOK     bool
	}{
		{"submit from draft", domain.StatusDraft, domain.ActionSubmitForApproval, domain.StatusPendingApproval, true},
		{"approve from pending", domain.StatusPendingApproval, domain.ActionApprove, domain.StatusApproved, true},
		{"reject from pending", domain.StatusPendingApproval, domain.ActionReject, domain.StatusRejected, true},
		{"post from approved", domain.StatusApproved, domain.ActionPost, domain.StatusPosted, true},
		{"resubmit from rejected", domain.StatusRejected, domain.ActionSubmitForApproval, domain.StatusPendingApproval, true},
		{"approve from draft is illegal", domain.StatusDraft, domain.ActionApprove, "", false},
		{"post from pending is illegal", domain.StatusPendingApproval, domain.ActionPost, "", false},
		{"submit from approved is illegal", domain.StatusApproved, domain.ActionSubmitForApproval, "", false},
		{"nothing from posted", domain.StatusPosted, domain.ActionPost, "", false},
		{"unknown action", domain.StatusDraft, domain.EntryAction("delete_forever"), "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := domain.NextStatus(tc.from, tc.action)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantStatus, next)
			}
		})
	}
}

func TestAvailableActions_DraftCreator(t *testing.T) {
	entry := makeEntry(domain.StatusDraft, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleStaff, "user-1")

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionSubmitForApproval, actions[0].Action)
	assert.Equal(t, "Submit for approval", actions[0].Label)
	assert.Equal(t, domain.SeverityPrimary, actions[0].Severity)
}

func TestAvailableActions_DraftNonCreator(t *testing.T) {
	entry := makeEntry(domain.StatusDraft, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleStaff, "user-2")

	assert.Empty(t, actions)
}

func TestAvailableActions_PendingSpendingAuthority(t *testing.T) {
	entry := makeEntry(domain.StatusPendingApproval, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleSpendingAuthority, "user-2")

	require.Len(t, actions, 2)
	assert.Equal(t, domain.ActionApprove, actions[0].Action)
	assert.Equal(t, domain.ActionReject, actions[1].Action)
	assert.Equal(t, domain.SeverityDanger, actions[1].Severity)
}

func TestAvailableActions_PendingCreatorGetsNothing(t *testing.T) {
	// The creator submitted the entry but holds no approval capability.
	entry := makeEntry(domain.StatusPendingApproval, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleStaff, "user-1")

	assert.Empty(t, actions)
}

func TestAvailableActions_ApprovedAccountant(t *testing.T) {
	entry := makeEntry(domain.StatusApproved, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleAccountant, "user-3")

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionPost, actions[0].Action)
	assert.Equal(t, "Post to ledger", actions[0].Label)
	assert.True(t, actions[0].RequiresComment)
}

func TestAvailableActions_ApprovedSpendingAuthorityGetsNothing(t *testing.T) {
	entry := makeEntry(domain.StatusApproved, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleSpendingAuthority, "user-2")

	assert.Empty(t, actions)
}

func TestAvailableActions_RejectedCreatorMayResubmit(t *testing.T) {
	entry := makeEntry(domain.StatusRejected, "user-1")

	actions := domain.AvailableActions(entry, domain.RoleStaff, "user-1")

	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionSubmitForApproval, actions[0].Action)
	assert.Equal(t, "Resubmit for approval", actions[0].Label)
}

func TestAvailableActions_PostedIsTerminalForEveryone(t *testing.T) {
	entry := makeEntry(domain.StatusPosted, "user-1")

	for _, role := range []domain.OrganizationRole{
		domain.RoleAdmin,
		domain.RoleSpendingAuthority,
		domain.RoleAccountant,
		domain.RoleStaff,
		domain.RoleReadOnly,
	} {
		assert.Empty(t, domain.AvailableActions(entry, role, "user-1"), "role %s", role)
	}
}

func TestAvailableActions_AdminGetsEverythingOffered(t *testing.T) {
	testCases := []struct {
		status domain.EntryStatus
		want   []domain.EntryAction
	}{
		{domain.StatusDraft, []domain.EntryAction{domain.ActionSubmitForApproval}},
		{domain.StatusPendingApproval, []domain.EntryAction{domain.ActionApprove, domain.ActionReject}},
		{domain.StatusApproved, []domain.EntryAction{domain.ActionPost}},
		{domain.StatusRejected, []domain.EntryAction{domain.ActionSubmitForApproval}},
		{domain.StatusPosted, []domain.EntryAction{}},
	}

	for _, tc := range testCases {
		entry := makeEntry(tc.status, "someone-else")
		actions := domain.AvailableActions(entry, domain.RoleAdmin, "admin-1")
		got := make([]domain.EntryAction, 0, len(actions))
		for _, a := range actions {
			got = append(got, a.Action)
		}
		assert.Equal(t, tc.want, got, "status %s", tc.status)
	}
}

// Every action the catalog offers must be a legal transition; the catalog may
// never invent a move the transition table forbids.
func TestCatalogIsSubsetOfTransitionTable(t *testing.T) {
	statuses := []domain.EntryStatus{
		domain.StatusDraft,
		domain.StatusPendingApproval,
		domain.StatusApproved,
		domain.StatusPosted,
		domain.StatusRejected,
	}
	roles := []domain.OrganizationRole{
		domain.RoleAdmin,
		domain.RoleSpendingAuthority,
		domain.RoleAccountant,
		domain.RoleStaff,
		domain.RoleReadOnly,
	}

	for _, status := range statuses {
		for _, role := range roles {
			entry := makeEntry(status, "user-1")
			for _, action := range domain.AvailableActions(entry, role, "user-1") {
				_, ok := domain.NextStatus(status, action.Action)
				assert.True(t, ok, "catalog offered %s from %s for role %s but the transition table forbids it", action.Action, status, role)
			}
		}
	}
}

func TestAvailableActions_NilEntry(t *testing.T) {
	assert.Empty(t, domain.AvailableActions(nil, domain.RoleAdmin, "user-1"))
}

func TestCanEditEntry(t *testing.T) {
	testCases := []struct {
		name   string
		status domain.EntryStatus
		role   domain.OrganizationRole
		userID string
		want   bool
	}{
		{"creator edits own draft", domain.StatusDraft, domain.RoleStaff, "user-1", true},
		{"non-creator cannot edit draft", domain.StatusDraft, domain.RoleStaff, "user-2", false},
		{"creator edits own rejected entry", domain.StatusRejected, domain.RoleStaff, "user-1", true},
		{"spending authority edits pending entry", domain.StatusPendingApproval, domain.RoleSpendingAuthority, "user-2", true},
		{"creator cannot edit own pending entry", domain.StatusPendingApproval, domain.RoleStaff, "user-1", false},
		{"spending authority edits approved entry", domain.StatusApproved, domain.RoleSpendingAuthority, "user-2", true},
		{"accountant cannot edit approved entry", domain.StatusApproved, domain.RoleAccountant, "user-3", false},
		{"nobody edits posted entries", domain.StatusPosted, domain.RoleSpendingAuthority, "user-2", false},
		{"creator cannot edit own posted entry", domain.StatusPosted, domain.RoleStaff, "user-1", false},
		{"admin edits anything", domain.StatusPosted, domain.RoleAdmin, "admin-1", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := makeEntry(tc.status, "user-1")
			assert.Equal(t, tc.want, domain.CanEditEntry(entry, tc.role, tc.userID))
		})
	}
}

func TestCanDeleteEntry(t *testing.T) {
	testCases := []struct {
		name   string
		status domain.EntryStatus
		role   domain.OrganizationRole
		userID string
		want   bool
	}{
		{"creator deletes own draft", domain.StatusDraft, domain.RoleStaff, "user-1", true},
		{"non-creator cannot delete draft", domain.StatusDraft, domain.RoleStaff, "user-2", false},
		{"creator cannot delete own pending entry", domain.StatusPendingApproval, domain.RoleStaff, "user-1", false},
		{"creator cannot delete own rejected entry", domain.StatusRejected, domain.RoleStaff, "user-1", false},
		{"spending authority cannot delete pending entry", domain.StatusPendingApproval, domain.RoleSpendingAuthority, "user-2", false},
		{"admin deletes drafts", domain.StatusDraft, domain.RoleAdmin, "admin-1", true},
		{"admin deletes posted entries", domain.StatusPosted, domain.RoleAdmin, "admin-1", true},
		{"admin deletes pending entries", domain.StatusPendingApproval, domain.RoleAdmin, "admin-1", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := makeEntry(tc.status, "user-1")
			assert.Equal(t, tc.want, domain.CanDeleteEntry(entry, tc.role, tc.userID))
		})
	}
}
