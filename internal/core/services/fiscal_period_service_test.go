package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/core/services"
)

type FiscalPeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockFiscalPeriodRepository
	mockOrgSvc     *MockOrganizationAuthorizer
	service        portssvc.FiscalPeriodSvcFacade
}

func (suite *FiscalPeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.mockOrgSvc = new(MockOrganizationAuthorizer)
	suite.service = services.NewFiscalPeriodService(suite.mockPeriodRepo, suite.mockOrgSvc)
}

func (suite *FiscalPeriodServiceTestSuite) closedPeriod() *domain.FiscalPeriod {
	closedBy := "accountant-1"
	closedAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return &domain.FiscalPeriod{
		PeriodID:       "period-1",
		OrganizationID: testOrgID,
		Year:           2026,
		Month:          time.March,
		Status:         domain.PeriodClosed,
		ClosedBy:       &closedBy,
		ClosedAt:       &closedAt,
	}
}

func (suite *FiscalPeriodServiceTestSuite) TestIsDateLocked_NoPeriodRowMeansOpen() {
	ctx := context.Background()
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, date).Return(nil, apperrors.ErrNotFound).Once()

	locked, err := suite.service.IsDateLocked(ctx, testOrgID, date)

	suite.Require().NoError(err)
	suite.False(locked)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsDateLocked_OpenPeriod() {
	ctx := context.Background()
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	period := suite.closedPeriod()
	period.Status = domain.PeriodOpen
	period.ClosedBy = nil
	period.ClosedAt = nil

	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, date).Return(period, nil).Once()

	locked, err := suite.service.IsDateLocked(ctx, testOrgID, date)

	suite.Require().NoError(err)
	suite.False(locked)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsDateLocked_ClosedPeriod() {
	ctx := context.Background()
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, date).Return(suite.closedPeriod(), nil).Once()

	locked, err := suite.service.IsDateLocked(ctx, testOrgID, date)

	suite.Require().NoError(err)
	suite.True(locked)
}

func (suite *FiscalPeriodServiceTestSuite) TestIsDateLocked_RepoErrorIsPropagated() {
	ctx := context.Background()
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, date).Return(nil, assert.AnError).Once()

	locked, err := suite.service.IsDateLocked(ctx, testOrgID, date)

	suite.Require().Error(err)
	suite.False(locked)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_CreatesRowWhenAbsent() {
	ctx := context.Background()
	firstOfMonth := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "accountant-1", testOrgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, firstOfMonth).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.MatchedBy(func(p domain.FiscalPeriod) bool {
		return p.OrganizationID == testOrgID &&
			p.Year == 2026 &&
			p.Month == time.March &&
			p.Status == domain.PeriodClosed &&
			p.ClosedBy != nil && *p.ClosedBy == "accountant-1" &&
			p.ClosedAt != nil
	})).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, testOrgID, 2026, time.March, "accountant-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, period.Status)
	suite.Require().NotNil(period.ClosedBy)
	suite.Equal("accountant-1", *period.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_ClosesExistingOpenRow() {
	ctx := context.Background()
	firstOfMonth := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	period := suite.closedPeriod()
	period.Status = domain.PeriodOpen
	period.ClosedBy = nil
	period.ClosedAt = nil

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "accountant-1", testOrgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, firstOfMonth).Return(period, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, "period-1", domain.PeriodClosed, mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time"), "accountant-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.ClosePeriod(ctx, testOrgID, 2026, time.March, "accountant-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, closed.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_AlreadyClosedConflicts() {
	ctx := context.Background()
	firstOfMonth := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "accountant-1", testOrgID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByDate", ctx, testOrgID, firstOfMonth).Return(suite.closedPeriod(), nil).Once()

	period, err := suite.service.ClosePeriod(ctx, testOrgID, 2026, time.March, "accountant-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_StaffDenied() {
	ctx := context.Background()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "staff-1", testOrgID, domain.RoleAccountant).Return(apperrors.ErrForbidden).Once()

	period, err := suite.service.ClosePeriod(ctx, testOrgID, 2026, time.March, "staff-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindPeriodByDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestClosePeriod_MonthOutOfRange() {
	ctx := context.Background()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "accountant-1", testOrgID, domain.RoleAccountant).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, testOrgID, 2026, time.Month(13), "accountant-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_Success() {
	ctx := context.Background()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "admin-1", testOrgID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, "period-1").Return(suite.closedPeriod(), nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodStatus", ctx, "period-1", domain.PeriodOpen, (*string)(nil), (*time.Time)(nil), "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := suite.service.ReopenPeriod(ctx, testOrgID, "period-1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Nil(period.ClosedBy)
	suite.Nil(period.ClosedAt)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_AccountantDenied() {
	ctx := context.Background()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "accountant-1", testOrgID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()

	period, err := suite.service.ReopenPeriod(ctx, testOrgID, "period-1", "accountant-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_NotClosedConflicts() {
	ctx := context.Background()
	period := suite.closedPeriod()
	period.Status = domain.PeriodOpen

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "admin-1", testOrgID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, "period-1").Return(period, nil).Once()

	got, err := suite.service.ReopenPeriod(ctx, testOrgID, "period-1", "admin-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestReopenPeriod_OtherOrganizationHidden() {
	ctx := context.Background()
	period := suite.closedPeriod()
	period.OrganizationID = "org-2"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, "admin-1", testOrgID, domain.RoleAdmin).Return(nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, "period-1").Return(period, nil).Once()

	got, err := suite.service.ReopenPeriod(ctx, testOrgID, "period-1", "admin-1")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestFiscalPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalPeriodServiceTestSuite))
}
