/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"github.com/OSSystems/pkg/log"
)

// ResetState is the State interface implementation for the
// ExecutorStateReset. It resets without touching the boot pointer,
// leaving the loader to run again and take the fast path.
type ResetState struct {
	BaseState
}

// Handle for ResetState issues the reset
func (state *ResetState) Handle(e *Executor) State {
	err := e.Reboot()
	if err != nil {
		log.Error(err)
	}

	return nil
}

// NewResetState creates a new ResetState
func NewResetState() *ResetState {
	state := &ResetState{
		BaseState: BaseState{id: ExecutorStateReset},
	}

	return state
}
