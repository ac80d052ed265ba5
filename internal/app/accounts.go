package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/nsl/internal/adapters/repository"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
	"github.com/okian/nsl/pkg/metrics"
)

// MaxPINAttempts is how many wrong PINs lock a login out.
const MaxPINAttempts = 3

// Login outcomes recorded in metrics.
const (
	LoginSuccess    = "success"
	LoginWrongPIN   = "wrong_pin"
	LoginLockedOut  = "locked_out"
	LoginRegistered = "registered"
)

// ValidPIN reports whether pin is exactly four ASCII digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// FindCustomer looks email up case-insensitively. found is false when no
// account uses it.
func (s *Service) FindCustomer(ctx context.Context, email string) (c model.Customer, found bool, err error) {
	c, err = s.customers.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Customer{}, false, nil
	}
	if err != nil {
		return model.Customer{}, false, err
	}
	return c, true, nil
}

// VerifyPIN checks one PIN attempt. attempt is 1-based; the last allowed
// attempt that fails is recorded as a lockout.
func (s *Service) VerifyPIN(ctx context.Context, c model.Customer, pin string, attempt int) error {
	if pin == c.PIN {
		metrics.RecordLogin(LoginSuccess)
		s.logger.Info(ctx, "customer logged in", logger.String("customer_id", c.ID))
		return nil
	}
	if attempt >= MaxPINAttempts {
		metrics.RecordLogin(LoginLockedOut)
		s.logger.Warn(ctx, "customer locked out", logger.String("customer_id", c.ID))
	} else {
		metrics.RecordLogin(LoginWrongPIN)
	}
	return ErrWrongPIN
}

// Authenticate checks pin against the account customerID in a single
// attempt. Returns ErrCustomerNotFound or ErrWrongPIN.
func (s *Service) Authenticate(ctx context.Context, customerID, pin string) (model.Customer, error) {
	c, err := s.customer(ctx, customerID)
	if err != nil {
		return model.Customer{}, err
	}
	if pin != c.PIN {
		metrics.RecordLogin(LoginWrongPIN)
		s.logger.Warn(ctx, "pin rejected", logger.String("customer_id", customerID))
		return model.Customer{}, ErrWrongPIN
	}
	return c, nil
}

// customer resolves an account id. Squads are only kept for accounts that
// exist.
func (s *Service) customer(ctx context.Context, id string) (model.Customer, error) {
	if s.customers == nil {
		return model.Customer{}, ErrNotConfigured
	}
	c, err := s.customers.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

// Register creates an account for a new email.
func (s *Service) Register(ctx context.Context, name, email, pin string) (model.Customer, error) {
	if !ValidPIN(pin) {
		return model.Customer{}, ErrInvalidPIN
	}
	c, err := s.customers.Create(ctx, name, email, pin)
	if err != nil {
		return model.Customer{}, fmt.Errorf("register: %w", err)
	}
	metrics.RecordLogin(LoginRegistered)
	return c, nil
}
