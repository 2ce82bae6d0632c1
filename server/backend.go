/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package server

import "github.com/julienschmidt/httprouter"

// Route binds one trigger API endpoint to its handler
type Route struct {
	Method string
	Path   string
	Handle httprouter.Handle
}

// Backend is anything that can populate the trigger API router
type Backend interface {
	Routes() []Route
}
