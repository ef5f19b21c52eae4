package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidSeedLength is returned when a custom wallet seed is not 64 characters long
	ErrInvalidSeedLength = errors.New("seed must be exactly 64 hexadecimal characters")

	// ErrSourceMissing is returned when a mirror source directory does not exist
	ErrSourceMissing = errors.New("source directory not found")

	// ErrUnknownNetwork is returned when a network name is not configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrEndpointUnreachable is returned when one or more network endpoints fail their probe
	ErrEndpointUnreachable = errors.New("endpoint unreachable")
)

// SeedLengthErr reports the length of a rejected seed
type SeedLengthErr struct {
	Length int
}

func (e SeedLengthErr) Error() string {
	return fmt.Sprintf("%s (got %d)", ErrInvalidSeedLength, e.Length)
}

func (e SeedLengthErr) Unwrap() error {
	return ErrInvalidSeedLength
}

// UnknownNetworkErr carries close matches for an unconfigured network name
type UnknownNetworkErr struct {
	Name        string
	Suggestions []string
}

func (e UnknownNetworkErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s '%s'", ErrUnknownNetwork, e.Name)
	}
	return fmt.Sprintf("%s '%s' (did you mean '%s'?)", ErrUnknownNetwork, e.Name, e.Suggestions[0])
}

func (e UnknownNetworkErr) Unwrap() error {
	return ErrUnknownNetwork
}
