/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package executor

import (
	"io"
	"io/ioutil"

	"github.com/go-ini/ini"

	"github.com/nakomis/bootboots-sub001/utils"
)

// the loader's settings are deliberately tiny: the paths making up the
// on-disk contract with the application, and the flash geometry

const (
	defaultStagingPath  = "/mnt/sdcard/firmware-staging.img"
	defaultRecordDir    = "/mnt/data/otarecord"
	defaultTargetDevice = "/dev/mtdblock1"
)

type Settings struct {
	StorageSettings `ini:"Storage" json:"storage"`
	FlashSettings   `ini:"Flash" json:"flash"`
}

type StorageSettings struct {
	StagingPath string `ini:"StagingPath" json:"staging-path"`
	RecordDir   string `ini:"RecordDir" json:"record-dir"`
}

type FlashSettings struct {
	TargetDevice string `ini:"TargetDevice" json:"target-device"`
	ChunkSize    int    `ini:"ChunkSize" json:"chunk-size"`
}

func init() {
	ini.PrettyFormat = false
}

func LoadSettings(r io.Reader) (*Settings, error) {
	cfg, err := ini.Load(ioutil.NopCloser(r))
	if err != nil || cfg == nil {
		return nil, err
	}

	s := DefaultSettings()

	err = cfg.MapTo(s)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func DefaultSettings() *Settings {
	return &Settings{
		StorageSettings: StorageSettings{
			StagingPath: defaultStagingPath,
			RecordDir:   defaultRecordDir,
		},

		FlashSettings: FlashSettings{
			TargetDevice: defaultTargetDevice,
			ChunkSize:    utils.ChunkSize,
		},
	}
}
