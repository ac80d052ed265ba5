package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
)

var customerHeader = []string{"customer_id", "name", "email", "pin"}

// CSVCustomerStore keeps customer accounts in a CSV file.
type CSVCustomerStore struct {
	path string
	opts options
	mu   sync.Mutex
}

// NewCSVCustomerStore creates a customer store over path.
func NewCSVCustomerStore(path string, opts ...Option) *CSVCustomerStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CSVCustomerStore{path: path, opts: o}
}

// FindByEmail implements CustomerStore.
func (s *CSVCustomerStore) FindByEmail(_ context.Context, email string) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return model.Customer{}, err
	}
	if c, ok := findEmail(all, email); ok {
		return c, nil
	}
	return model.Customer{}, fmt.Errorf("%w: %s", ErrNotFound, email)
}

// FindByID implements CustomerStore.
func (s *CSVCustomerStore) FindByID(_ context.Context, id string) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return model.Customer{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create implements CustomerStore.
func (s *CSVCustomerStore) Create(ctx context.Context, name, email, pin string) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return model.Customer{}, err
	}
	if _, ok := findEmail(all, email); ok {
		return model.Customer{}, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	c := model.Customer{ID: nextCustomerID(len(all)), Name: name, Email: email, PIN: pin}
	all = append(all, c)

	rows := make([][]string, len(all))
	for i, a := range all {
		rows[i] = []string{a.ID, a.Name, a.Email, a.PIN}
	}
	if err := writeTable(s.path, customerHeader, rows); err != nil {
		return model.Customer{}, fmt.Errorf("save customers: %w", err)
	}
	s.opts.logger.Info(ctx, "customer created", logger.String("customer_id", c.ID))
	return c, nil
}

func (s *CSVCustomerStore) readAll() ([]model.Customer, error) {
	t, err := readTable(s.path, s.opts.encoding, customerHeader...)
	if isNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	out := make([]model.Customer, 0, len(t.rows))
	for i := range t.rows {
		out = append(out, model.Customer{
			ID:    t.get(i, "customer_id"),
			Name:  t.get(i, "name"),
			Email: t.get(i, "email"),
			PIN:   t.get(i, "pin"),
		})
	}
	return out, nil
}

func findEmail(all []model.Customer, email string) (model.Customer, bool) {
	for _, c := range all {
		if strings.EqualFold(c.Email, email) {
			return c, true
		}
	}
	return model.Customer{}, false
}

func nextCustomerID(existing int) string {
	return fmt.Sprintf("customer%d", existing+1)
}
