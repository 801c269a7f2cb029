package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when an email lookup misses.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when signing up with an existing email.
var ErrEmailTaken = errors.New("email already registered")

// User is a stored account. PasswordHash is a bcrypt hash, never the
// plaintext password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Metadata     string
}

// CreateUser inserts a new account.
func (s *Store) CreateUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO users (id, email, password_hash, metadata) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Metadata,
	)
	if err != nil {
		// sqlite reports the UNIQUE(email) violation as a generic error;
		// check for the existing row rather than parsing driver strings.
		var existing string
		lookupErr := s.db.QueryRow(`SELECT id FROM users WHERE email = ?`, u.Email).Scan(&existing)
		if lookupErr == nil {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByEmail looks an account up for sign-in.
func (s *Store) GetUserByEmail(email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u User
	var metadata sql.NullString
	err := s.db.QueryRow(
		`SELECT id, email, password_hash, metadata FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &metadata)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	u.Metadata = metadata.String
	return u, nil
}

// Vendor is an approved vendor application tied to a user account.
type Vendor struct {
	ID           string
	UserID       string
	BusinessName string
	Phone        string
	Location     string
}

// CreateVendor records a vendor application.
func (s *Store) CreateVendor(v Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO vendors (id, user_id, business_name, phone, location) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.BusinessName, v.Phone, v.Location,
	)
	if err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

// GetVendorByUser returns the vendor profile for a user, or ErrUserNotFound
// when the user never applied.
func (s *Store) GetVendorByUser(userID string) (Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v Vendor
	var phone, location sql.NullString
	err := s.db.QueryRow(
		`SELECT id, user_id, business_name, phone, location FROM vendors WHERE user_id = ?`, userID,
	).Scan(&v.ID, &v.UserID, &v.BusinessName, &phone, &location)
	if err == sql.ErrNoRows {
		return Vendor{}, ErrUserNotFound
	}
	if err != nil {
		return Vendor{}, fmt.Errorf("get vendor: %w", err)
	}
	v.Phone = phone.String
	v.Location = location.String
	return v, nil
}
