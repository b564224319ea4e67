package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryType domain.EntryType, entryID string) (*domain.BudgetEntry, error) {
	args := m.Called(ctx, entryType, entryID)
	var entry *domain.BudgetEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.BudgetEntry)
	}
	return entry, args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, entryType *domain.EntryType, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.BudgetEntry, *string, error) {
	args := m.Called(ctx, organizationID, entryType, status, limit, nextToken)
	var entries []domain.BudgetEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.BudgetEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.BudgetEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, entry domain.BudgetEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryWorkflowFields(ctx context.Context, entryType domain.EntryType, entryID string, update portsrepo.EntryWorkflowUpdate) error {
	args := m.Called(ctx, entryType, entryID, update)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryType domain.EntryType, entryID string) error {
	args := m.Called(ctx, entryType, entryID)
	return args.Error(0)
}

// --- Mock CommentRepository ---

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListCommentsByEntry(ctx context.Context, entryType domain.EntryType, entryID string) ([]domain.Comment, error) {
	args := m.Called(ctx, entryType, entryID)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}

// --- Mock BudgetCodeRepository ---

type MockBudgetCodeRepository struct {
	mock.Mock
}

func (m *MockBudgetCodeRepository) FindBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error) {
	args := m.Called(ctx, budgetCodeID)
	var code *domain.BudgetCode
	if args.Get(0) != nil {
		code = args.Get(0).(*domain.BudgetCode)
	}
	return code, args.Error(1)
}

func (m *MockBudgetCodeRepository) ListBudgetCodesByOrganization(ctx context.Context, organizationID string, entryType *domain.EntryType, includeInactive bool) ([]domain.BudgetCode, error) {
	args := m.Called(ctx, organizationID, entryType, includeInactive)
	var codes []domain.BudgetCode
	if args.Get(0) != nil {
		codes = args.Get(0).([]domain.BudgetCode)
	}
	return codes, args.Error(1)
}

func (m *MockBudgetCodeRepository) SaveBudgetCode(ctx context.Context, code domain.BudgetCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockBudgetCodeRepository) UpdateBudgetCode(ctx context.Context, code domain.BudgetCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// --- Mock FiscalPeriodRepository ---

type MockFiscalPeriodRepository struct {
	mock.Mock
}

func (m *MockFiscalPeriodRepository) FindPeriodByDate(ctx context.Context, organizationID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, organizationID, date)
	var period *domain.FiscalPeriod
	if args.Get(0) != nil {
		period = args.Get(0).(*domain.FiscalPeriod)
	}
	return period, args.Error(1)
}

func (m *MockFiscalPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	var period *domain.FiscalPeriod
	if args.Get(0) != nil {
		period = args.Get(0).(*domain.FiscalPeriod)
	}
	return period, args.Error(1)
}

func (m *MockFiscalPeriodRepository) ListPeriodsByOrganization(ctx context.Context, organizationID string, year int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, organizationID, year)
	var periods []domain.FiscalPeriod
	if args.Get(0) != nil {
		periods = args.Get(0).([]domain.FiscalPeriod)
	}
	return periods, args.Error(1)
}

func (m *MockFiscalPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockFiscalPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedBy *string, closedAt *time.Time, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, periodID, status, closedBy, closedAt, updatedByUserID, updatedAt)
	return args.Error(0)
}

// --- Mock OrganizationAuthorizer ---

type MockOrganizationAuthorizer struct {
	mock.Mock
}

func (m *MockOrganizationAuthorizer) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.OrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

func (m *MockOrganizationAuthorizer) GetUserRole(ctx context.Context, userID, organizationID string) (domain.OrganizationRole, error) {
	args := m.Called(ctx, userID, organizationID)
	return args.Get(0).(domain.OrganizationRole), args.Error(1)
}

// --- Mock PeriodLockChecker ---

type MockPeriodLockChecker struct {
	mock.Mock
}

func (m *MockPeriodLockChecker) IsDateLocked(ctx context.Context, organizationID string, date time.Time) (bool, error) {
	args := m.Called(ctx, organizationID, date)
	return args.Bool(0), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}
