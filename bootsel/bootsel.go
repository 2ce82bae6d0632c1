/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package bootsel

import (
	"fmt"
	"strings"

	"github.com/OSSystems/pkg/log"

	"github.com/nakomis/bootboots-sub001/utils"
)

// Partition identifies one of the two flash partitions the boot
// pointer can reference
type Partition int

const (
	// Loader is the first-stage loader partition, never written by
	// the update system
	Loader Partition = iota
	// Application is the single rewritable partition holding the main
	// firmware
	Application
)

var partitionNames = map[Partition]string{
	Loader:      "loader",
	Application: "app",
}

func (p Partition) String() string {
	return partitionNames[p]
}

// Interface describes the operations on the hardware boot pointer
type Interface interface {
	Boot() (Partition, error)
	SetBoot(p Partition) error
}

// DefaultImpl drives the boot pointer through the board support
// command line tools
type DefaultImpl struct {
	utils.CmdLineExecuter
}

// Boot returns the partition the hardware will run on the next reset
func (i *DefaultImpl) Boot() (Partition, error) {
	log.Debug("Running 'bootboots-boot-get'")

	output, err := i.Execute("bootboots-boot-get")
	if err != nil {
		finalErr := fmt.Errorf("failed to execute 'bootboots-boot-get': %s", err)
		log.Error(finalErr)
		return Loader, finalErr
	}

	name := strings.TrimSpace(string(output))

	for p, n := range partitionNames {
		if n == name {
			log.Debug("Boot partition: ", n)
			return p, nil
		}
	}

	finalErr := fmt.Errorf("failed to parse response from 'bootboots-boot-get': unknown partition '%s'", name)
	log.Error(finalErr)
	return Loader, finalErr
}

// SetBoot points the hardware boot pointer at "p" for the next reset
func (i *DefaultImpl) SetBoot(p Partition) error {
	log.Debug("Running 'bootboots-boot-set' for partition: ", p)

	_, err := i.Execute(fmt.Sprintf("bootboots-boot-set %s", p))
	if err != nil {
		finalErr := fmt.Errorf("failed to execute 'bootboots-boot-set': %s", err)
		log.Error(finalErr)
		return finalErr
	}

	return nil
}

// EnsureLoaderNext re-arms the loader for the next reset. It runs once
// per normal application start and skips the write when the pointer
// already references the loader, since the pointer storage has bounded
// write endurance.
func EnsureLoaderNext(i Interface) error {
	current, err := i.Boot()
	if err != nil {
		return err
	}

	if current == Loader {
		log.Debug("boot pointer already references the loader")
		return nil
	}

	log.Info("re-arming the loader for the next reset")

	return i.SetBoot(Loader)
}
