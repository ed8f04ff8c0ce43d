package models

import "errors"

var (
	ErrNoDiscoverySource  = errors.New("character discovery source not found")
	ErrViewTimeout        = errors.New("timed out waiting for character view")
	ErrDuplicateCharacter = errors.New("character already present in party")
	ErrInvalidParty       = errors.New("invalid party dataset")
)
