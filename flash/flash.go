/*
 * bootboots
 * Copyright (C) 2026 Nakomis
 *
 * SPDX-License-Identifier: MIT
 */

package flash

import (
	"fmt"
	"io"
	"os"

	"github.com/OSSystems/pkg/log"
	"github.com/spf13/afero"

	"github.com/nakomis/bootboots-sub001/utils"
)

// Interface describes the streamed write of a staged image into the
// application partition
type Interface interface {
	Apply(fsBackend afero.Fs, sourcePath string, imageSize uint32, progressChan chan<- int) error
}

// PartitionWriter copies a staging file into the application partition
// device in bounded chunks
type PartitionWriter struct {
	TargetPath string
	ChunkSize  int
}

func NewPartitionWriter(targetPath string) *PartitionWriter {
	return &PartitionWriter{
		TargetPath: targetPath,
		ChunkSize:  utils.ChunkSize,
	}
}

// Apply writes exactly imageSize bytes from sourcePath into the target
// partition. Progress is reported through progressChan in coarse steps
// using non-blocking writes.
func (pw *PartitionWriter) Apply(fsBackend afero.Fs, sourcePath string, imageSize uint32, progressChan chan<- int) error {
	log.Info(fmt.Sprintf("writing application partition. (source: %s, size: %d)", sourcePath, imageSize))

	source, err := fsBackend.Open(sourcePath)
	if err != nil {
		return utils.NewStorageError(err)
	}
	defer source.Close()

	target, err := fsBackend.OpenFile(pw.TargetPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return utils.NewStorageError(err)
	}
	defer target.Close()

	limited := &io.LimitedReader{R: source, N: int64(imageSize)}

	buf := make([]byte, pw.ChunkSize)
	written := int64(0)
	lastReported := 0

	for written < int64(imageSize) {
		n, readErr := limited.Read(buf)

		if n > 0 {
			wn, writeErr := target.Write(buf[0:n])
			written += int64(wn)

			if writeErr != nil {
				return utils.NewStorageError(writeErr)
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return utils.NewStorageError(readErr)
		}

		percent := int(written * 100 / int64(imageSize))
		if percent/10 > lastReported/10 {
			lastReported = percent

			// "non-blocking" write to channel
			select {
			case progressChan <- percent:
			default:
			}
		}
	}

	if written != int64(imageSize) {
		return utils.NewStorageError(fmt.Errorf("staging file ended after %d of %d bytes", written, imageSize))
	}

	err = target.Sync()
	if err != nil {
		return utils.NewStorageError(err)
	}

	log.Info("application partition written successfully")

	return nil
}
