package history

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/iov-one/heirloom/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Event is a single successfully delivered transaction. Height and Pos
// identify it, a block replayed after a crash records nothing new.
type Event struct {
	ID     uint64    `gorm:"primaryKey" json:"id"`
	Height int64     `gorm:"uniqueIndex:idx_event_block_pos" json:"height"`
	Pos    int       `gorm:"uniqueIndex:idx_event_block_pos" json:"pos"`
	Time   time.Time `json:"time"`
	Path   string    `gorm:"index" json:"path"`
	Signer string    `json:"signer,omitempty"`
	Data   []byte    `json:"data,omitempty"`
	Log    string    `json:"log,omitempty"`
}

// Store persists events in sqlite.
type Store struct {
	db *gorm.DB
}

// Open returns a store backed by the sqlite file at path. An empty path
// opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != "" {
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Event{}); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &Store{db: db}, nil
}

// Record appends an event. The ID is assigned by the database. An event
// with the Height and Pos of a recorded one is skipped.
func (s *Store) Record(e *Event) error {
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(e).Error; err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// List returns recorded events in insertion order. A non empty path limits
// the result to events of that message path.
func (s *Store) List(path string) ([]Event, error) {
	q := s.db.Order("id asc")
	if path != "" {
		q = q.Where("path = ?", path)
	}
	var events []Event
	if err := q.Find(&events).Error; err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return events, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return sqlDB.Close()
}
