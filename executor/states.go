/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

// ExecutorState holds the possible states of the loader
type ExecutorState int

const (
	// ExecutorDummyState is a dummy state
	ExecutorDummyState ExecutorState = iota
	// ExecutorStateCheck is set while the loader inspects the update
	// record
	ExecutorStateCheck
	// ExecutorStateFlash is set while the loader writes the staged
	// image into the application partition
	ExecutorStateFlash
	// ExecutorStateBootApplication is set when the loader hands over
	// to the application partition
	ExecutorStateBootApplication
	// ExecutorStateReset is set when the loader resets without
	// touching the boot pointer
	ExecutorStateReset
)

var statusNames = map[ExecutorState]string{
	ExecutorDummyState:           "dummy",
	ExecutorStateCheck:           "check",
	ExecutorStateFlash:           "flash",
	ExecutorStateBootApplication: "boot-application",
	ExecutorStateReset:           "reset",
}

// BaseState is the state from which all others must do composition
type BaseState struct {
	id ExecutorState
}

// ID returns the state id
func (b *BaseState) ID() ExecutorState {
	return b.id
}

// State interface describes the necessary operations for a State
type State interface {
	ID() ExecutorState
	Handle(*Executor) State // Handle implements the behavior when the State is set
}

// StateToString converts a "ExecutorState" to string
func StateToString(status ExecutorState) string {
	return statusNames[status]
}
