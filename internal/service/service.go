// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, performs business operations, and
// calls repository methods to interact with the data.
//
// Every operation is one transaction: mutating methods run inside
// TxManager.RunInTx (all writes commit or none do), query-only methods
// inside RunInReadOnlyTx. Each method fails fast on the first unmet
// precondition and performs no writes before that point.
package service

import (
	"context"

	"github.com/shootit/greme/internal/errs"
	"github.com/shootit/greme/internal/model"
)

// TxManager runs a function inside a database transaction carried
// through the context. *database.Database implements it.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// resolveUser is the single identity-resolution path: every service
// method resolves its caller (or target) through it, whether the
// identity names an id or an email. Failure is always UserNotFound.
func resolveUser(ctx context.Context, users UserStore, identity model.Identity) (*model.User, error) {
	var (
		user *model.User
		err  error
	)

	switch {
	case !identity.IsZero():
		if id, ok := identity.ID(); ok {
			user, err = users.FindByID(ctx, id)
		} else if email, ok := identity.Email(); ok {
			user, err = users.FindByEmail(ctx, email)
		}
	}

	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NewUserNotFound()
	}
	return user, nil
}
