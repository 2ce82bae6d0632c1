/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package main

const (
	firmwareVersion = "1.1.0"

	settingsPath = "/etc/bootboots-app.conf"
)
