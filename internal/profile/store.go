package profile

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/zalando/go-keyring"
)

// Store persists the birth date in the OS keyring. A date of birth is
// personal data: it stays out of plaintext preference files, while the
// non-sensitive expectancy lives in the regular preferences store.
type Store struct {
	// Service is the keyring service name; defaults to the application ID.
	Service string
}

// NewStore creates a store bound to the application's keyring service.
func NewStore() Store {
	return Store{Service: config.KeyringService}
}

// SaveBirthDate writes the date to the keyring, or removes the entry when
// the date is zero.
func (s Store) SaveBirthDate(date time.Time) error {
	if date.IsZero() {
		// Best effort removal; a missing entry is not an error.
		_ = keyring.Delete(s.Service, config.KeyringUserDOB)
		return nil
	}
	if err := keyring.Set(s.Service, config.KeyringUserDOB, date.Format(config.DateFormatFullDash)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	return nil
}

// LoadBirthDate reads the stored date. A missing or unreadable entry yields
// the zero time and an error; callers degrade to manual entry.
func (s Store) LoadBirthDate() (time.Time, error) {
	raw, err := keyring.Get(s.Service, config.KeyringUserDOB)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrKeyringLoad, err)
	}
	d, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrKeyringLoad, err)
	}
	return d, nil
}
