package urn

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const uuidPrefix = "urn:uuid:"

// URN represents a Uniform Resource Name.
type URN string

// FromUUID creates a URN from a UUID.
func FromUUID(uuid uuid.UUID) URN {
	return URN(uuidPrefix + uuid.String())
}

// FromExchangeID creates the id of the credential issued by an exchange.
// Agent exchange ids are uuids, but any non empty id is accepted.
func FromExchangeID(exchangeID string) URN {
	return URN(uuidPrefix + exchangeID)
}

// String returns the urn as a string
func (u URN) String() string {
	return string(u)
}

// ExchangeID returns the identifier following the uuid namespace prefix
func (u URN) ExchangeID() (string, error) {
	if err := u.valid(); err != nil {
		return "", err
	}
	id := strings.TrimPrefix(string(u), uuidPrefix)
	if id == "" {
		return "", errors.New("empty URN identifier")
	}
	return id, nil
}

// UUID returns the UUID from a URN. It can throw an error to prevent bad constructor calls or urns without uuids
func (u URN) UUID() (uuid.UUID, error) {
	if err := u.valid(); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(string(u[len(uuidPrefix):]))
}

func (u URN) valid() error {
	if len(u) < len(uuidPrefix) {
		return errors.New("invalid uuid URN length")
	}
	if !strings.HasPrefix(string(u), uuidPrefix) {
		return errors.New("invalid uuid URN prefix")
	}
	return nil
}

// Parse creates a URN from a string.
func Parse(u string) (URN, error) {
	if err := URN(u).valid(); err != nil {
		return "", err
	}
	return URN(u), nil
}
