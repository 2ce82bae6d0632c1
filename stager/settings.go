/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package stager

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/go-ini/ini"

	"github.com/nakomis/bootboots-sub001/utils"
)

const (
	defaultStagingPath = "/mnt/sdcard/firmware-staging.img"
	defaultRecordDir   = "/mnt/data/otarecord"
	defaultReadTimeout = 30 * time.Second
)

type Settings struct {
	UpdateSettings  `ini:"Update" json:"update"`
	StorageSettings `ini:"Storage" json:"storage"`
	NetworkSettings `ini:"Network" json:"network"`
}

type UpdateSettings struct {
	StagingPath string        `ini:"StagingPath" json:"staging-path"`
	ChunkSize   int           `ini:"ChunkSize" json:"chunk-size"`
	ReadTimeout time.Duration `ini:"ReadTimeout" json:"read-timeout"`
}

type StorageSettings struct {
	RecordDir string `ini:"RecordDir" json:"record-dir"`
}

type NetworkSettings struct {
	ListenAddress string `ini:"ListenAddress" json:"listen-address"`
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
		UpdateSettings: UpdateSettings{
			StagingPath: defaultStagingPath,
			ChunkSize:   utils.DownloadChunkSize,
			ReadTimeout: defaultReadTimeout,
		},

		StorageSettings: StorageSettings{
			RecordDir: defaultRecordDir,
		},

		NetworkSettings: NetworkSettings{
			ListenAddress: ":8080",
		},
	}
}
