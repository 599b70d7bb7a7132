package services

// ServiceContainer holds instances of all the application services.
// This is the entry point handlers use to reach service functionality.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
}
