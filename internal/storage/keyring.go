package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/Tiliavir/myhours-cli/internal/model"
)

const (
	KeyringService = "my-hours-cli"
	KeyringUser    = "session"
)

// KeyringStore keeps the cached session in the operating system keyring.
type KeyringStore struct {
	service string
	user    string
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: KeyringService, user: KeyringUser}
}

// Load returns (nil, nil) when the keyring holds no session.
func (k *KeyringStore) Load() (*model.Session, error) {
	data, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from keyring: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("corrupt session in keyring (run login again): %w", err)
	}
	return &sess, nil
}

func (k *KeyringStore) Save(sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	if err := keyring.Set(k.service, k.user, string(data)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}
