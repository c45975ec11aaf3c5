package services

import "errors"

var (
	// ErrWalletNotFound is returned when no wallet record exists for the given id
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrProfileNotFound is returned when the client has no provisioned wallet
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAgentUnavailable is returned when the agent did not carry out a request
	ErrAgentUnavailable = errors.New("agent request failed")
	// ErrExchangeNotFound is returned when the agent does not know the exchange
	ErrExchangeNotFound = errors.New("exchange not found")
	// ErrCredentialNotFound is returned when deleting a credential the wallet does not hold
	ErrCredentialNotFound = errors.New("credential not found")
)
