package repository

import "context"

// UnitOfWork provides transaction boundaries and repository access bound to
// the same store session.
//
// Do runs fn inside one atomic unit: every repository obtained from the
// UnitOfWork passed to fn shares the transaction, and a returned error rolls
// the whole unit back. Repositories obtained outside Do operate on the base
// session (single-statement reads).
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
