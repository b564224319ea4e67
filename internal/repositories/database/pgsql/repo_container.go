package pgsql

import (
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)
	commentRepo := newPgxCommentRepository(dbPool)
	budgetCodeRepo := newPgxBudgetCodeRepository(dbPool)
	fiscalPeriodRepo := newPgxFiscalPeriodRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:        entryRepo,
		CommentRepo:      commentRepo,
		BudgetCodeRepo:   budgetCodeRepo,
		FiscalPeriodRepo: fiscalPeriodRepo,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
		ReportingRepo:    reportingRepo,
	}
}
