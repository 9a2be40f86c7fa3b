// Package provider implements translation backends for doctrans.
package provider

import (
	"errors"

	"github.com/ZaguanLabs/doctrans"
)

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = doctrans.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = doctrans.TranslateRequest

// Capabilities is an alias to the main package type.
type Capabilities = doctrans.Capabilities

// ErrEmptyTranslation is returned when a backend answers without any text.
var ErrEmptyTranslation = errors.New("empty translation in response")
