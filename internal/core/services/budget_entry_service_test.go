package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/core/services"
	"github.com/inforlary/belkys-backend/internal/dto"
)

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo      *MockEntryRepository
	mockCommentRepo    *MockCommentRepository
	mockBudgetCodeRepo *MockBudgetCodeRepository
	mockOrgSvc         *MockOrganizationAuthorizer
	mockPeriodLock     *MockPeriodLockChecker
	service            portssvc.EntrySvcFacade
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockCommentRepo = new(MockCommentRepository)
	suite.mockBudgetCodeRepo = new(MockBudgetCodeRepository)
	suite.mockOrgSvc = new(MockOrganizationAuthorizer)
	suite.mockPeriodLock = new(MockPeriodLockChecker)
	suite.service = services.NewEntryService(suite.mockEntryRepo, suite.mockCommentRepo, suite.mockBudgetCodeRepo, suite.mockOrgSvc, suite.mockPeriodLock)
}

func (suite *EntryServiceTestSuite) activeCode() *domain.BudgetCode {
	return &domain.BudgetCode{
		BudgetCodeID:   "code-1",
		OrganizationID: testOrgID,
		Code:           "03.2.1.01",
		Name:           "Road maintenance",
		EntryType:      domain.EntryTypeExpense,
		IsActive:       true,
	}
}

func (suite *EntryServiceTestSuite) createRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryType:    domain.EntryTypeExpense,
		BudgetCodeID: "code-1",
		FiscalYear:   2026,
		Description:  "Pothole repairs, 5th street",
		Amount:       decimal.NewFromInt(1500),
		EntryDate:    time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "creator-1", testOrgID, domain.RoleStaff).Return(nil).Once()
	suite.mockBudgetCodeRepo.On("FindBudgetCodeByID", ctx, "code-1").Return(suite.activeCode(), nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.BudgetEntry) bool {
		return e.Status == domain.StatusDraft &&
			e.OrganizationID == testOrgID &&
			e.CreatedBy == "creator-1" &&
			e.LastModifiedBy == "creator-1" &&
			e.EntryID != ""
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, testOrgID, req, "creator-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, entry.Status)
	suite.Equal("creator-1", entry.CreatedBy)
	suite.Nil(entry.ApprovedBy)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Amount = decimal.Zero

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "creator-1", testOrgID, domain.RoleStaff).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, testOrgID, req, "creator-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_InactiveBudgetCode() {
	ctx := context.Background()
	req := suite.createRequest()
	code := suite.activeCode()
	code.IsActive = false

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "creator-1", testOrgID, domain.RoleStaff).Return(nil).Once()
	suite.mockBudgetCodeRepo.On("FindBudgetCodeByID", ctx, "code-1").Return(code, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, testOrgID, req, "creator-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrBudgetCodeInactive)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_CodeTypeMismatch() {
	ctx := context.Background()
	req := suite.createRequest()
	code := suite.activeCode()
	code.EntryType = domain.EntryTypeRevenue

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "creator-1", testOrgID, domain.RoleStaff).Return(nil).Once()
	suite.mockBudgetCodeRepo.On("FindBudgetCodeByID", ctx, "code-1").Return(code, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, testOrgID, req, "creator-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrBudgetCodeMismatch)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_CodeFromOtherOrganization() {
	ctx := context.Background()
	req := suite.createRequest()
	code := suite.activeCode()
	code.OrganizationID = "org-2"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "creator-1", testOrgID, domain.RoleStaff).Return(nil).Once()
	suite.mockBudgetCodeRepo.On("FindBudgetCodeByID", ctx, "code-1").Return(code, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, testOrgID, req, "creator-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_ReadOnlyUserDenied() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "viewer-1", testOrgID, domain.RoleStaff).Return(apperrors.ErrForbidden).Once()

	entry, err := suite.service.CreateEntry(ctx, testOrgID, req, "viewer-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBudgetCodeRepo.AssertNotCalled(suite.T(), "FindBudgetCodeByID", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) draftEntry(createdBy string) *domain.BudgetEntry {
	return &domain.BudgetEntry{
		EntryID:        testEntryID,
		OrganizationID: testOrgID,
		EntryType:      domain.EntryTypeExpense,
		BudgetCodeID:   "code-1",
		FiscalYear:     2026,
		Description:    "Pothole repairs, 5th street",
		Amount:         decimal.NewFromInt(1500),
		EntryDate:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:         domain.StatusDraft,
		LastModifiedBy: createdBy,
		AuditFields: domain.AuditFields{
			CreatedBy: createdBy,
		},
	}
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_CreatorEditsOwnDraft() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	newDesc := "Pothole repairs, 5th and 6th street"
	req := dto.UpdateEntryRequest{Description: &newDesc}

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(false, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.BudgetEntry) bool {
		return e.Description == newDesc && e.LastModifiedBy == "creator-1"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "creator-1")

	suite.Require().NoError(err)
	suite.Equal(newDesc, updated.Description)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_NonCreatorStaffForbidden() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	newDesc := "tampered"
	req := dto.UpdateEntryRequest{Description: &newDesc}

	suite.mockOrgSvc.On("GetUserRole", ctx, "other-staff", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "other-staff")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPeriodLock.AssertNotCalled(suite.T(), "IsDateLocked", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_PostedNotEditableBySpendingAuthority() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	entry.Status = domain.StatusPosted
	newDesc := "late fix"
	req := dto.UpdateEntryRequest{Description: &newDesc}

	suite.mockOrgSvc.On("GetUserRole", ctx, "approver-1", testOrgID).Return(domain.RoleSpendingAuthority, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "approver-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_CurrentDateLocked() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	newDesc := "too late"
	req := dto.UpdateEntryRequest{Description: &newDesc}

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(true, nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "creator-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_TargetDateLocked() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	// Moving the entry into a closed month is blocked even though its current
	// month is open.
	lockedDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	req := dto.UpdateEntryRequest{EntryDate: &lockedDate}

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(false, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, lockedDate).Return(true, nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "creator-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_DateChangeRecomputesFiscalYear() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	newDate := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)
	req := dto.UpdateEntryRequest{EntryDate: &newDate}

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, mock.AnythingOfType("time.Time")).Return(false, nil).Twice()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.BudgetEntry) bool {
		return e.EntryDate.Equal(newDate) && e.FiscalYear == 2027
	})).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "creator-1")

	suite.Require().NoError(err)
	suite.Equal(2027, updated.FiscalYear)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_PendingEditableBySpendingAuthority() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	entry.Status = domain.StatusPendingApproval
	amount := decimal.NewFromInt(1200)
	req := dto.UpdateEntryRequest{Amount: &amount}

	suite.mockOrgSvc.On("GetUserRole", ctx, "approver-1", testOrgID).Return(domain.RoleSpendingAuthority, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(false, nil).Once()
	suite.mockEntryRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.BudgetEntry) bool {
		return e.Amount.Equal(amount)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, req, "approver-1")

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(amount))
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_CreatorDeletesOwnDraft() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(false, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, domain.EntryTypeExpense, testEntryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, "creator-1")

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_NonDraftForbiddenForCreator() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	entry.Status = domain.StatusPendingApproval

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, "creator-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_AdminDeletesPosted() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	entry.Status = domain.StatusPosted

	suite.mockOrgSvc.On("GetUserRole", ctx, "admin-1", testOrgID).Return(domain.RoleAdmin, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(false, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, domain.EntryTypeExpense, testEntryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, "admin-1")

	suite.Require().NoError(err)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_BlockedByPeriodLock() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()
	suite.mockPeriodLock.On("IsDateLocked", ctx, testOrgID, entry.EntryDate).Return(true, nil).Once()

	err := suite.service.DeleteEntry(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, "creator-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestGetAvailableActions_DraftCreator() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")

	suite.mockOrgSvc.On("GetUserRole", ctx, "creator-1", testOrgID).Return(domain.RoleStaff, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	actions, err := suite.service.GetAvailableActions(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, "creator-1")

	suite.Require().NoError(err)
	suite.Require().Len(actions, 1)
	suite.Equal(domain.ActionSubmitForApproval, actions[0].Action)
	suite.Equal("Submit for approval", actions[0].Label)
}

func (suite *EntryServiceTestSuite) TestGetEntryByID_OtherOrganizationHidden() {
	ctx := context.Background()
	entry := suite.draftEntry("creator-1")
	entry.OrganizationID = "org-2"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "creator-1", testOrgID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, domain.EntryTypeExpense, testEntryID).Return(entry, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, testOrgID, domain.EntryTypeExpense, testEntryID, "creator-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestListEntries_InvalidStatusFilter() {
	ctx := context.Background()
	bad := domain.EntryStatus("archived")
	params := dto.ListEntriesParams{Status: &bad, Limit: 20}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "viewer-1", testOrgID, domain.RoleReadOnly).Return(nil).Once()

	resp, err := suite.service.ListEntries(ctx, testOrgID, "viewer-1", params)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ListEntriesByOrganization", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
