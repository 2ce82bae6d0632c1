/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package utils

// Rebooter triggers the reset that hands control back to the loader.
// Both programs inject it so tests can stage and flash without the
// host going down.
type Rebooter interface {
	Reboot() error
}

type RebooterImpl struct {
}

func (r *RebooterImpl) Reboot() error {
	c := &CmdLine{}

	_, err := c.Execute("/sbin/reboot")

	return err
}
