// Package store provides SQLite persistence for dealdrop.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jkariuki/dealdrop/internal/deal"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	// For in-memory databases, use shared cache mode so all connections
	// in the pool see the same database
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deals (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		original_price REAL NOT NULL,
		discount_price REAL NOT NULL,
		discount_percentage INTEGER NOT NULL,
		time_left_seconds INTEGER NOT NULL,
		images TEXT,
		watching INTEGER DEFAULT 0,
		claimed INTEGER DEFAULT 0,
		upvotes INTEGER DEFAULT 0,
		downvotes INTEGER DEFAULT 0,
		verified INTEGER DEFAULT 0,
		inventory INTEGER DEFAULT 0,
		category TEXT,
		expiry_date DATETIME,
		is_damaged INTEGER DEFAULT 0,
		collection_location TEXT,
		collection_time_limit_hours INTEGER DEFAULT 0,
		vendor_id TEXT,
		terms TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_deals_position ON deals(position);
	CREATE INDEX IF NOT EXISTS idx_deals_vendor ON deals(vendor_id);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		metadata TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS vendors (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		business_name TEXT NOT NULL,
		phone TEXT,
		location TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_vendors_user ON vendors(user_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveDeals stores deals in feed order, returning the count of rows written.
// Duplicates (by id) get their counters updated in place so refreshes land.
func (s *Store) SaveDeals(deals []deal.Deal) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO deals (id, position, title, description, original_price, discount_price,
			discount_percentage, time_left_seconds, images, watching, claimed, upvotes,
			downvotes, verified, inventory, category, expiry_date, is_damaged,
			collection_location, collection_time_limit_hours, vendor_id, terms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			watching = excluded.watching,
			claimed = excluded.claimed,
			upvotes = excluded.upvotes,
			downvotes = excluded.downvotes,
			inventory = excluded.inventory
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var newCount int
	for i, d := range deals {
		images, err := json.Marshal(d.Images)
		if err != nil {
			return 0, fmt.Errorf("marshal images for %s: %w", d.ID, err)
		}

		var expiry interface{}
		if !d.ExpiryDate.IsZero() {
			expiry = d.ExpiryDate.UTC()
		}

		res, err := stmt.Exec(
			d.ID, i, d.Title, d.Description, d.OriginalPrice, d.DiscountPrice,
			d.DiscountPercentage, d.TimeLeftSeconds, string(images), d.Watching,
			d.Claimed, d.Upvotes, d.Downvotes, boolToInt(d.Verified), d.Inventory,
			string(d.Category), expiry, boolToInt(d.IsDamaged),
			d.CollectionLocation, d.CollectionTimeLimitHours, d.VendorID, d.Terms,
		)
		if err != nil {
			return 0, fmt.Errorf("insert deal %s: %w", d.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			newCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return newCount, nil
}

// InsertDeal stores a single new deal at the end of the feed order.
// Used by the vendor create-deal flow.
func (s *Store) InsertDeal(d deal.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxPos sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(position) FROM deals`).Scan(&maxPos); err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	images, err := json.Marshal(d.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}

	var expiry interface{}
	if !d.ExpiryDate.IsZero() {
		expiry = d.ExpiryDate.UTC()
	}

	_, err = s.db.Exec(`
		INSERT INTO deals (id, position, title, description, original_price, discount_price,
			discount_percentage, time_left_seconds, images, watching, claimed, upvotes,
			downvotes, verified, inventory, category, expiry_date, is_damaged,
			collection_location, collection_time_limit_hours, vendor_id, terms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, maxPos.Int64+1, d.Title, d.Description, d.OriginalPrice, d.DiscountPrice,
		d.DiscountPercentage, d.TimeLeftSeconds, string(images), d.Watching,
		d.Claimed, d.Upvotes, d.Downvotes, boolToInt(d.Verified), d.Inventory,
		string(d.Category), expiry, boolToInt(d.IsDamaged),
		d.CollectionLocation, d.CollectionTimeLimitHours, d.VendorID, d.Terms,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// UpvoteDeal increments a deal's upvote counter in place. A miss returns
// deal.ErrNotFound.
func (s *Store) UpvoteDeal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE deals SET upvotes = upvotes + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("upvote deal %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return deal.ErrNotFound
	}
	return nil
}

// ListDeals returns the full catalogue in feed order.
// An empty result is a valid boundary case the caller renders as empty-state.
func (s *Store) ListDeals() ([]deal.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(dealColumns + ` FROM deals ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	defer rows.Close()

	var deals []deal.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// GetDeal looks a deal up by id. A miss returns deal.ErrNotFound, which
// callers handle as a normal branch.
func (s *Store) GetDeal(id string) (deal.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(dealColumns+` FROM deals WHERE id = ?`, id)
	d, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return deal.Deal{}, deal.ErrNotFound
	}
	if err != nil {
		return deal.Deal{}, fmt.Errorf("get deal %s: %w", id, err)
	}
	return d, nil
}

// ListDealsByVendor returns a vendor's own deals, newest first.
func (s *Store) ListDealsByVendor(vendorID string) ([]deal.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(dealColumns+` FROM deals WHERE vendor_id = ? ORDER BY created_at DESC`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("query vendor deals: %w", err)
	}
	defer rows.Close()

	var deals []deal.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

const dealColumns = `SELECT id, title, description, original_price, discount_price,
	discount_percentage, time_left_seconds, images, watching, claimed, upvotes,
	downvotes, verified, inventory, category, expiry_date, is_damaged,
	collection_location, collection_time_limit_hours, vendor_id, terms`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDeal(row scanner) (deal.Deal, error) {
	var (
		d         deal.Deal
		images    sql.NullString
		category  sql.NullString
		expiry    sql.NullTime
		verified  int
		damaged   int
		desc      sql.NullString
		location  sql.NullString
		vendorID  sql.NullString
		terms     sql.NullString
	)

	err := row.Scan(
		&d.ID, &d.Title, &desc, &d.OriginalPrice, &d.DiscountPrice,
		&d.DiscountPercentage, &d.TimeLeftSeconds, &images, &d.Watching,
		&d.Claimed, &d.Upvotes, &d.Downvotes, &verified, &d.Inventory,
		&category, &expiry, &damaged, &location, &d.CollectionTimeLimitHours,
		&vendorID, &terms,
	)
	if err != nil {
		return deal.Deal{}, err
	}

	d.Description = desc.String
	d.Category = deal.Category(category.String)
	d.CollectionLocation = location.String
	d.VendorID = vendorID.String
	d.Terms = terms.String
	d.Verified = verified != 0
	d.IsDamaged = damaged != 0
	if expiry.Valid {
		d.ExpiryDate = expiry.Time
	}
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &d.Images); err != nil {
			return deal.Deal{}, fmt.Errorf("unmarshal images for %s: %w", d.ID, err)
		}
	}

	// Absent optional fields become documented defaults here, at the read
	// boundary, so nothing downstream sees a hole.
	d.Normalize()
	return d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CountDeals returns the catalogue size.
func (s *Store) CountDeals() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM deals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count deals: %w", err)
	}
	return n, nil
}

// SeedIfEmpty populates the catalogue from the static seed on first run.
func (s *Store) SeedIfEmpty(now time.Time) error {
	n, err := s.CountDeals()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.SaveDeals(deal.Seed(now))
	return err
}
