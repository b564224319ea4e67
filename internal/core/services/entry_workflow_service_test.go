package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/core/services"
)

const (
	testOrgID   = "org-1"
	testEntryID = "entry-1"
)

type EntryWorkflowServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockCommentRepo *MockCommentRepository
	mockOrgSvc      *MockOrganizationAuthorizer
	service         portssvc.EntryWorkflowSvcFacade
}

func (suite *EntryWorkflowServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockCommentRepo = new(MockCommentRepository)
	suite.mockOrgSvc = new(MockOrganizationAuthorizer)
	suite.service = services.NewEntryWorkflowService(suite.mockEntryRepo, suite.mockCommentRepo, suite.mockOrgSvc)
}

func (suite *EntryWorkflowServiceTestSuite) newEntry(status domain.EntryStatus, createdBy string) *domain.BudgetEntry {
	return &domain.BudgetEntry{
		EntryID:        testEntryID,
		OrganizationID: testOrgID,
		EntryType:      domain.EntryTypeExpense,
		BudgetCodeID:   "code-1",
		FiscalYear:     2026,
		Description:    "Road maintenance",
		Amount:         decimal.NewFromInt(1500),
		EntryDate:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:         status,
		LastModifiedBy: createdBy,
		AuditFields: domain.AuditFields{
			CreatedBy: createdBy,
		},
	}
}

func (suite *EntryWorkflowServiceTestSuite) TestSubmitForApproval_Success() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusDraft, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.MatchedBy(func(u portsrepo.EntryWorkflowUpdate) bool {
		return u.Status == domain.StatusPendingApproval && u.LastModifiedBy == "creator-1"
	})).Return(nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionSubmitForApproval, "creator-1", "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPendingApproval, updated.Status)
	suite.Equal("creator-1", updated.LastModifiedBy)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockCommentRepo.AssertNotCalled(suite.T(), "SaveComment", mock.Anything, mock.Anything)
}

func (suite *EntryWorkflowServiceTestSuite) TestApprove_StampsApprovalAndKeepsRejectionReason() {
	ctx := context.Background()
	// An entry that went draft -> pending -> rejected -> pending again still
	// carries the old rejection reason; approval must not clear it.
	oldReason := "missing invoice"
	entry := suite.newEntry(domain.StatusPendingApproval, "creator-1")
	entry.RejectionReason = &oldReason

	suite.mockOrgSvc.On("GetUserRole", ctx, "approver-1", testOrgID).Return(domain.RoleSpendingAuthority, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.MatchedBy(func(u portsrepo.EntryWorkflowUpdate) bool {
		return u.Status == domain.StatusApproved &&
			u.ApprovedBy != nil && *u.ApprovedBy == "approver-1" &&
			u.ApprovedAt != nil &&
			u.RejectionReason != nil && *u.RejectionReason == oldReason &&
			u.PostedBy == nil
	})).Return(nil).Once()
	suite.mockCommentRepo.On("SaveComment", ctx, mock.MatchedBy(func(c domain.Comment) bool {
		return c.Body == "looks good" && c.AuthorUserID == "approver-1" && c.EntryID == testEntryID
	})).Return(nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionApprove, "approver-1", "looks good")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.Require().NotNil(updated.ApprovedBy)
	suite.Equal("approver-1", *updated.ApprovedBy)
	suite.NotNil(updated.ApprovedAt)
	suite.Require().NotNil(updated.RejectionReason)
	suite.Equal(oldReason, *updated.RejectionReason)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockCommentRepo.AssertExpectations(suite.T())
}

func (suite *EntryWorkflowServiceTestSuite) TestReject_StoresCommentAsRejectionReason() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusPendingApproval, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "approver-1", testOrgID).Return(domain.RoleSpendingAuthority, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.MatchedBy(func(u portsrepo.EntryWorkflowUpdate) bool {
		return u.Status == domain.StatusRejected &&
			u.RejectionReason != nil && *u.RejectionReason == "amount exceeds the allocation" &&
			u.ApprovedBy == nil
	})).Return(nil).Once()
	suite.mockCommentRepo.On("SaveComment", ctx, mock.AnythingOfType("domain.Comment")).Return(nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionReject, "approver-1", "amount exceeds the allocation")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, updated.Status)
	suite.Require().NotNil(updated.RejectionReason)
	suite.Equal("amount exceeds the allocation", *updated.RejectionReason)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryWorkflowServiceTestSuite) TestPost_StampsPostingFields() {
	ctx := context.Background()
	approvedBy := "approver-1"
	approvedAt := time.Now().Add(-time.Hour)
	entry := suite.newEntry(domain.StatusApproved, "creator-1")
	entry.ApprovedBy = &approvedBy
	entry.ApprovedAt = &approvedAt

	suite.mockOrgSvc.On("GetUserRole", ctx, "accountant-1", testOrgID).Return(domain.RoleAccountant, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.MatchedBy(func(u portsrepo.EntryWorkflowUpdate) bool {
		return u.Status == domain.StatusPosted &&
			u.PostedBy != nil && *u.PostedBy == "accountant-1" &&
			u.PostedAt != nil &&
			u.ApprovedBy != nil && *u.ApprovedBy == approvedBy
	})).Return(nil).Once()
	suite.mockCommentRepo.On("SaveComment", ctx, mock.AnythingOfType("domain.Comment")).Return(nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionPost, "accountant-1", "posted to ledger")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPosted, updated.Status)
	suite.Require().NotNil(updated.PostedBy)
	suite.Equal("accountant-1", *updated.PostedBy)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryWorkflowServiceTestSuite) TestUnknownAction_FailsWithoutPersistence() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusDraft, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "admin-1", testOrgID).Return(domain.RoleAdmin, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.EntryAction("delete_forever"), "admin-1", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidAction)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryWorkflowFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommentRepo.AssertNotCalled(suite.T(), "SaveComment", mock.Anything, mock.Anything)
}

func (suite *EntryWorkflowServiceTestSuite) TestIllegalFromStatus_FailsWithoutPersistence() {
	ctx := context.Background()
	// Approve straight from draft skips the pending stage.
	entry := suite.newEntry(domain.StatusDraft, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "admin-1", testOrgID).Return(domain.RoleAdmin, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionApprove, "admin-1", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidAction)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryWorkflowFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryWorkflowServiceTestSuite) TestPostedIsTerminal() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusPosted, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "admin-1", testOrgID).Return(domain.RoleAdmin, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionSubmitForApproval, "admin-1", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidAction)
}

func (suite *EntryWorkflowServiceTestSuite) TestLegalButUnauthorized_Forbidden() {
	ctx := context.Background()
	// Approve from pending is a legal transition, but staff may not do it.
	entry := suite.newEntry(domain.StatusPendingApproval, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionApprove, "creator-1", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntryWorkflowFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryWorkflowServiceTestSuite) TestSubmitByNonCreator_Forbidden() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusDraft, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "other-staff", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionSubmitForApproval, "other-staff", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *EntryWorkflowServiceTestSuite) TestCommentAppendFailure_TransitionStands() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusPendingApproval, "creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "approver-1", testOrgID).Return(domain.RoleSpendingAuthority, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.AnythingOfType("repositories.EntryWorkflowUpdate")).Return(nil).Once()
	suite.mockCommentRepo.On("SaveComment", ctx, mock.AnythingOfType("domain.Comment")).Return(assert.AnError).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionApprove, "approver-1", "approved with remarks")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, updated.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockCommentRepo.AssertExpectations(suite.T())
}

func (suite *EntryWorkflowServiceTestSuite) TestEntryFromOtherOrganization_NotFound() {
	ctx := context.Background()
	entry := suite.newEntry(domain.StatusDraft, "creator-1")
	entry.OrganizationID = "org-2"

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionSubmitForApproval, "creator-1", "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryWorkflowServiceTestSuite) TestRejectedResubmitApproveRoundTrip() {
	ctx := context.Background()
	reason := "wrong budget code"
	entry := suite.newEntry(domain.StatusRejected, "creator-1")
	entry.RejectionReason = &reason

	// Resubmit by the creator.
	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.MatchedBy(func(u portsrepo.EntryWorkflowUpdate) bool {
		return u.Status == domain.StatusPendingApproval && u.RejectionReason != nil && *u.RejectionReason == reason
	})).Return(nil).Once()

	resubmitted, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionSubmitForApproval, "creator-1", "")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPendingApproval, resubmitted.Status)

	// Approve the resubmission.
	suite.mockOrgSvc.On("GetUserRole", ctx, "approver-1", testOrgID).Return(domain.RoleSpendingAuthority, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(resubmitted, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryWorkflowFields", ctx, domain.EntryTypeExpense, testEntryID, mock.MatchedBy(func(u portsrepo.EntryWorkflowUpdate) bool {
		return u.Status == domain.StatusApproved && u.ApprovedBy != nil && *u.ApprovedBy == "approver-1"
	})).Return(nil).Once()

	approved, err := suite.service.ExecuteAction(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, domain.ActionApprove, "approver-1", "")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestEntryWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryWorkflowServiceTestSuite))
}
