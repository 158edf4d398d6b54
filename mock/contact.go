package mock

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.ContactService = (*ContactService)(nil)

// ContactService is a mock implementation of prospect.ContactService.
type ContactService struct {
	CreateContactFn   func(ctx context.Context, contact *prospect.Contact) error
	FindContactByIDFn func(ctx context.Context, id string) (*prospect.Contact, error)
	FindContactsFn    func(ctx context.Context, filter prospect.ContactFilter) ([]*prospect.Contact, int, error)
	UpdateContactFn   func(ctx context.Context, id string, upd prospect.ContactUpdate) (*prospect.Contact, error)
	DeleteContactFn   func(ctx context.Context, id string) error
}

func (s *ContactService) CreateContact(ctx context.Context, contact *prospect.Contact) error {
	return s.CreateContactFn(ctx, contact)
}

func (s *ContactService) FindContactByID(ctx context.Context, id string) (*prospect.Contact, error) {
	return s.FindContactByIDFn(ctx, id)
}

func (s *ContactService) FindContacts(ctx context.Context, filter prospect.ContactFilter) ([]*prospect.Contact, int, error) {
	return s.FindContactsFn(ctx, filter)
}

func (s *ContactService) UpdateContact(ctx context.Context, id string, upd prospect.ContactUpdate) (*prospect.Contact, error) {
	return s.UpdateContactFn(ctx, id, upd)
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	return s.DeleteContactFn(ctx, id)
}
