// Package gate decides which mutations the console may issue while the
// backend is or is not scanning.
package gate

import (
	"errors"
	"fmt"
)

var ErrScanInProgress = errors.New("a scan is in progress")

type Action string

const (
	Create       Action = "create"
	Edit         Action = "edit"
	Delete       Action = "delete"
	ClearErrors  Action = "clear-errors"
	ToggleActive Action = "toggle"
)

// Capabilities are all true or all false; there is no partial state.
type Capabilities struct {
	CanEdit         bool `json:"can_edit"`
	CanDelete       bool `json:"can_delete"`
	CanClearErrors  bool `json:"can_clear_errors"`
	CanToggleActive bool `json:"can_toggle_active"`
	CanCreate       bool `json:"can_create"`
}

func For(isScanning bool) Capabilities {
	allowed := !isScanning
	return Capabilities{
		CanEdit:         allowed,
		CanDelete:       allowed,
		CanClearErrors:  allowed,
		CanToggleActive: allowed,
		CanCreate:       allowed,
	}
}

func (c Capabilities) Allows(action Action) bool {
	switch action {
	case Create:
		return c.CanCreate
	case Edit:
		return c.CanEdit
	case Delete:
		return c.CanDelete
	case ClearErrors:
		return c.CanClearErrors
	case ToggleActive:
		return c.CanToggleActive
	default:
		return false
	}
}

// Check returns ErrScanInProgress when action is not currently allowed.
func Check(c Capabilities, action Action) error {
	if c.Allows(action) {
		return nil
	}
	return fmt.Errorf("%s: %w", action, ErrScanInProgress)
}

// RequiresConfirmation reports whether the operator must confirm action
// before it is sent.
func RequiresConfirmation(action Action) bool {
	return action == Delete || action == ClearErrors
}
