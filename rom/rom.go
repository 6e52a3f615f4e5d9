// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rom loads calculator ROM dumps and derives the initial processor
// state from their headers.
package rom

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/go68k/memory"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "rom")

// Errors
var (
	ErrNoHeader     = errors.New("no valid header in ROM image")
	ErrUnknownModel = errors.New("unknown calculator model in ROM header")
)

// Header offsets inside the image
const (
	BootHeader = 0x00000
	OSHeader   = 0x12000
)

// Field offsets inside a header
const (
	offSSP    = 0x00
	offPC     = 0x04
	offMarker = 0x08
	offModel  = 0x0a
	hdrSize   = 0x0c
)

// CertMarker is the certificate marker every valid header carries.
const CertMarker = 0x800f

// An Image is a raw ROM dump, stored big-endian as the processor sees it.
type Image struct {
	Path string
	Data []byte
}

// Load reads a ROM dump from a file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: %w", err)
	}
	if len(data) < hdrSize || len(data)&1 != 0 {
		return nil, fmt.Errorf("rom: %s: %d bytes is not a word-aligned image", path, len(data))
	}
	log.WithFields(logrus.Fields{"path": path, "size": len(data)}).Info("loaded ROM image")
	return &Image{Path: path, Data: data}, nil
}

// State is the initial processor state derived from a ROM header.
type State struct {
	Model  memory.Model // calculator model
	SSP    uint32       // initial supervisor stack pointer
	PC     uint32       // initial program counter
	Header uint32       // image offset of the header that was trusted
}

func (s State) String() string {
	return fmt.Sprintf("%s SSP=$%06X PC=$%06X (header $%05X)", s.Model, s.SSP, s.PC, s.Header)
}

func (img *Image) word(off uint32) uint16 {
	return uint16(img.Data[off])<<8 | uint16(img.Data[off+1])
}

func (img *Image) long(off uint32) uint32 {
	return uint32(img.word(off))<<16 | uint32(img.word(off+2))
}

// Detect derives the model and initial SSP and PC from the image. The boot
// header is tried first, then the OS header.
func Detect(img *Image) (State, error) {
	return detect(img, 0)
}

// DetectAs derives the initial SSP and PC for a known model. The model ID
// byte in the header is ignored.
func DetectAs(img *Image, model memory.Model) (State, error) {
	if _, ok := model.Layout(); !ok {
		return State{}, fmt.Errorf("rom: %d: %w", byte(model), ErrUnknownModel)
	}
	return detect(img, model)
}

func detect(img *Image, model memory.Model) (State, error) {
	var lastErr error = ErrNoHeader
	for _, off := range []uint32{BootHeader, OSHeader} {
		s, err := img.header(off, model)
		if err == nil {
			log.WithField("state", s.String()).Debug("trusted ROM header")
			return s, nil
		}
		log.WithFields(logrus.Fields{
			"header": off,
			"reason": err,
		}).Debug("rejected ROM header")
		if errors.Is(err, ErrUnknownModel) {
			lastErr = err
		}
	}
	return State{}, fmt.Errorf("rom: %w", lastErr)
}

// header validates the header at the offset. A zero model means the model
// is taken from the header itself.
func (img *Image) header(off uint32, model memory.Model) (State, error) {
	if uint32(len(img.Data)) < off+hdrSize {
		return State{}, ErrNoHeader
	}
	if img.word(off+offMarker) != CertMarker {
		return State{}, ErrNoHeader
	}

	if model == 0 {
		model = memory.Model(img.Data[off+offModel])
	}
	layout, ok := model.Layout()
	if !ok {
		return State{}, ErrUnknownModel
	}

	s := State{
		Model:  model,
		SSP:    img.long(off + offSSP),
		PC:     img.long(off + offPC),
		Header: off,
	}
	switch {
	case s.SSP == 0 || s.SSP&1 != 0 || s.SSP > layout.RAMSize:
		return State{}, ErrNoHeader
	case s.PC&1 != 0 || !layout.InFlash(s.PC):
		return State{}, ErrNoHeader
	}
	return s, nil
}
