package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at wiring time.
type RepositoryProvider struct {
	AccountRepo     AccountRepository
	TransactionRepo TransactionRepository
}
