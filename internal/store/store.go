package store

import (
	"context"
	"time"

	"github.com/yanun0323/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"main/internal/schema"
)

// Fill is one execution row, covering both quoted orders and hedges.
type Fill struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `gorm:"index"`
	Hedge     bool
	Price     int64
	Volume    int64
	CreatedAt time.Time
}

// Outcome is the terminal state of one order.
type Outcome struct {
	OrderID    uint64 `gorm:"primaryKey"`
	FillVolume int64
	Fees       int64
	CreatedAt  time.Time
}

// Store persists executions to PostgreSQL.
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL with the given DSN and migrates the schema.
func Open(dsn string, config *gorm.Config) (*Store, error) {
	return New(postgres.Open(dsn), config)
}

// New connects through an arbitrary gorm dialector and migrates the
// schema.
func New(dialector gorm.Dialector, config *gorm.Config) (*Store, error) {
	if config == nil {
		config = &gorm.Config{}
	}
	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := db.AutoMigrate(&Fill{}, &Outcome{}); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveFill records one execution.
func (s *Store) SaveFill(ctx context.Context, orderID uint64, hedge bool, price schema.Price, volume schema.Quantity) error {
	row := Fill{
		OrderID: orderID,
		Hedge:   hedge,
		Price:   int64(price),
		Volume:  int64(volume),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "save fill")
	}
	return nil
}

// SaveOutcome records the terminal state of an order. Replays of the same
// terminal status overwrite the previous row.
func (s *Store) SaveOutcome(ctx context.Context, status schema.OrderStatus) error {
	row := Outcome{
		OrderID:    status.OrderID,
		FillVolume: int64(status.FillVolume),
		Fees:       int64(status.Fees),
	}
	err := s.db.WithContext(ctx).
		Where(Outcome{OrderID: status.OrderID}).
		Assign(map[string]any{"fill_volume": row.FillVolume, "fees": row.Fees}).
		FirstOrCreate(&row).Error
	if err != nil {
		return errors.Wrap(err, "save outcome")
	}
	return nil
}
