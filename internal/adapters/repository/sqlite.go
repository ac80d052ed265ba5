package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/pkg/logger"
)

// SquadRecord is the SQL row of one squad slot.
type SquadRecord struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	CustomerID string `gorm:"size:64;not null;index"`
	Position   string `gorm:"size:16;not null"`
	PlayerName string `gorm:"not null"`
	Qualities  string
}

// TableName pins the table name.
func (SquadRecord) TableName() string { return "squad_slots" }

// CustomerRecord is the SQL row of one customer account. EmailKey holds the
// case-folded email so lookups and uniqueness ignore case.
type CustomerRecord struct {
	Seq      uint   `gorm:"primaryKey;autoIncrement"`
	ID       string `gorm:"size:64;not null;uniqueIndex"`
	Name     string
	Email    string `gorm:"not null"`
	EmailKey string `gorm:"not null;uniqueIndex"`
	PIN      string `gorm:"size:8;not null"`
}

// TableName pins the table name.
func (CustomerRecord) TableName() string { return "customers" }

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the squad and customer tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SquadRecord{}, &CustomerRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SQLSquadStore implements SquadStore on gorm.
type SQLSquadStore struct {
	db   *gorm.DB
	opts options
}

// NewSQLSquadStore creates a squad store over a migrated db.
func NewSQLSquadStore(db *gorm.DB, opts ...Option) *SQLSquadStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &SQLSquadStore{db: db, opts: o}
}

// Load implements SquadStore.
func (s *SQLSquadStore) Load(ctx context.Context, customerID string) ([]model.SquadSlot, error) {
	var recs []SquadRecord
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("load squad: %w", err)
	}
	out := make([]model.SquadSlot, 0, len(recs))
	for _, r := range recs {
		pos, err := model.ParsePosition(r.Position)
		if err != nil {
			s.opts.logger.Warn(ctx, "skipping squad record", logger.Int("id", int(r.ID)), logger.Error(err))
			continue
		}
		out = append(out, model.SquadSlot{
			CustomerID: r.CustomerID,
			Position:   pos,
			PlayerName: r.PlayerName,
			Qualities:  r.Qualities,
		})
	}
	return out, nil
}

// Save implements SquadStore. The delete and inserts share one transaction.
func (s *SQLSquadStore) Save(ctx context.Context, customerID string, slots []model.SquadSlot) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customerID).Delete(&SquadRecord{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		recs := make([]SquadRecord, len(slots))
		for i, sl := range slots {
			recs[i] = SquadRecord{
				CustomerID: customerID,
				Position:   sl.Position.String(),
				PlayerName: sl.PlayerName,
				Qualities:  sl.Qualities,
			}
		}
		return tx.Create(&recs).Error
	})
	if err != nil {
		return fmt.Errorf("save squad: %w", err)
	}
	return nil
}

// SQLCustomerStore implements CustomerStore on gorm.
type SQLCustomerStore struct {
	db   *gorm.DB
	opts options
}

// NewSQLCustomerStore creates a customer store over a migrated db.
func NewSQLCustomerStore(db *gorm.DB, opts ...Option) *SQLCustomerStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &SQLCustomerStore{db: db, opts: o}
}

// FindByEmail implements CustomerStore.
func (s *SQLCustomerStore) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var rec CustomerRecord
	err := s.db.WithContext(ctx).Where("email_key = ?", strings.ToLower(email)).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return model.Customer{ID: rec.ID, Name: rec.Name, Email: rec.Email, PIN: rec.PIN}, nil
}

// FindByID implements CustomerStore.
func (s *SQLCustomerStore) FindByID(ctx context.Context, id string) (model.Customer, error) {
	var rec CustomerRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return model.Customer{ID: rec.ID, Name: rec.Name, Email: rec.Email, PIN: rec.PIN}, nil
}

// Create implements CustomerStore.
func (s *SQLCustomerStore) Create(ctx context.Context, name, email, pin string) (model.Customer, error) {
	var c model.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&CustomerRecord{}).Where("email_key = ?", strings.ToLower(email)).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		var n int64
		if err := tx.Model(&CustomerRecord{}).Count(&n).Error; err != nil {
			return err
		}
		rec := CustomerRecord{
			ID:       nextCustomerID(int(n)),
			Name:     name,
			Email:    email,
			EmailKey: strings.ToLower(email),
			PIN:      pin,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		c = model.Customer{ID: rec.ID, Name: rec.Name, Email: rec.Email, PIN: rec.PIN}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return model.Customer{}, err
		}
		return model.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	s.opts.logger.Info(ctx, "customer created", logger.String("customer_id", c.ID))
	return c, nil
}
