package services

import (
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize the organization service first since every other service
	// authorizes through it.
	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	orgAuthorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	// Fiscal periods next: the entry service needs its lock checker.
	container.FiscalPeriod = NewFiscalPeriodService(repos.FiscalPeriodRepo, orgAuthorizer)
	periodLock := container.FiscalPeriod.(portssvc.PeriodLockChecker)

	container.BudgetCode = NewBudgetCodeService(repos.BudgetCodeRepo, orgAuthorizer)
	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.CommentRepo,
		repos.BudgetCodeRepo,
		orgAuthorizer,
		periodLock,
	)
	container.EntryWorkflow = NewEntryWorkflowService(repos.EntryRepo, repos.CommentRepo, orgAuthorizer)

	container.User = NewUserService(repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, orgAuthorizer)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
