// Package accounts persists player bankrolls in SQLite. A username maps
// to one account; the chip balance survives across connections and is
// written back whenever a hand settles.
package accounts

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/cardroom/internal/ident"
)

// Account is a persisted player record
type Account struct {
	ID       string
	Username string
	Chips    int
}

// Store wraps the SQLite connection
type Store struct {
	db *sql.DB
}

// Open opens or creates the account database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening account database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			chips INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}
	return nil
}

// GetOrCreate looks up an account by username, creating it with the
// given starting balance if it does not exist.
func (s *Store) GetOrCreate(username string, startingChips int) (Account, error) {
	account := Account{Username: username}

	err := s.db.QueryRow(
		"SELECT id, chips FROM accounts WHERE username = ?", username,
	).Scan(&account.ID, &account.Chips)
	if err == nil {
		return account, nil
	}
	if err != sql.ErrNoRows {
		return Account{}, fmt.Errorf("looking up account %q: %w", username, err)
	}

	account.ID = ident.New()
	account.Chips = startingChips
	_, err = s.db.Exec(
		"INSERT INTO accounts (id, username, chips) VALUES (?, ?, ?)",
		account.ID, account.Username, account.Chips,
	)
	if err != nil {
		return Account{}, fmt.Errorf("creating account %q: %w", username, err)
	}
	return account, nil
}

// SetChips overwrites an account's balance
func (s *Store) SetChips(id string, chips int) error {
	res, err := s.db.Exec("UPDATE accounts SET chips = ? WHERE id = ?", chips, id)
	if err != nil {
		return fmt.Errorf("updating balance for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("account %s not found", id)
	}
	return nil
}

// Chips returns an account's current balance
func (s *Store) Chips(id string) (int, error) {
	var chips int
	err := s.db.QueryRow("SELECT chips FROM accounts WHERE id = ?", id).Scan(&chips)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("account %s not found", id)
	}
	if err != nil {
		return 0, fmt.Errorf("reading balance for %s: %w", id, err)
	}
	return chips, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
