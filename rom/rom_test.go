// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rom_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/beevik/go68k/memory"
	"github.com/beevik/go68k/rom"
)

func putHeader(data []byte, off int, ssp, pc uint32, marker uint16, model memory.Model) {
	put32 := func(o int, v uint32) {
		data[o], data[o+1], data[o+2], data[o+3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
	}
	put32(off, ssp)
	put32(off+4, pc)
	data[off+8], data[off+9] = byte(marker>>8), byte(marker)
	data[off+10] = byte(model)
}

var _ = Describe("Detect", func() {
	var img *rom.Image

	BeforeEach(func() {
		img = &rom.Image{Data: make([]byte, 0x20000)}
	})

	It("should trust a valid boot header", func() {
		putHeader(img.Data, rom.BootHeader, 0x4c00, 0x200100, rom.CertMarker, memory.TI89)
		s, err := rom.Detect(img)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(rom.State{Model: memory.TI89, SSP: 0x4c00, PC: 0x200100, Header: rom.BootHeader}))
	})

	It("should check the PC against the model's flash window", func() {
		putHeader(img.Data, rom.BootHeader, 0x4c00, 0x200100, rom.CertMarker, memory.TI92Plus)
		_, err := rom.Detect(img)
		Expect(err).To(MatchError(rom.ErrNoHeader))

		putHeader(img.Data, rom.BootHeader, 0x4c00, 0x400100, rom.CertMarker, memory.TI92Plus)
		s, err := rom.Detect(img)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Model).To(Equal(memory.TI92Plus))
	})

	It("should fall back to the OS header", func() {
		putHeader(img.Data, rom.BootHeader, 0x4c01, 0x200100, rom.CertMarker, memory.TI89)
		putHeader(img.Data, rom.OSHeader, 0x3ffe, 0x800200, rom.CertMarker, memory.TI89Titanium)
		s, err := rom.Detect(img)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Header).To(Equal(uint32(rom.OSHeader)))
		Expect(s.Model).To(Equal(memory.TI89Titanium))
		Expect(s.SSP).To(Equal(uint32(0x3ffe)))
	})

	DescribeTable("should reject implausible headers",
		func(ssp, pc uint32, marker uint16) {
			putHeader(img.Data, rom.BootHeader, ssp, pc, marker, memory.V200)
			_, err := rom.Detect(img)
			Expect(err).To(MatchError(rom.ErrNoHeader))
		},
		Entry("zero stack", uint32(0), uint32(0x200100), uint16(rom.CertMarker)),
		Entry("odd stack", uint32(0x4c01), uint32(0x200100), uint16(rom.CertMarker)),
		Entry("stack past RAM", uint32(0x100000), uint32(0x200100), uint16(rom.CertMarker)),
		Entry("odd PC", uint32(0x4c00), uint32(0x200101), uint16(rom.CertMarker)),
		Entry("PC outside flash", uint32(0x4c00), uint32(0x001000), uint16(rom.CertMarker)),
		Entry("bad marker", uint32(0x4c00), uint32(0x200100), uint16(0x1234)),
	)

	It("should report an unknown model", func() {
		putHeader(img.Data, rom.BootHeader, 0x4c00, 0x200100, rom.CertMarker, memory.Model(5))
		_, err := rom.Detect(img)
		Expect(err).To(MatchError(rom.ErrUnknownModel))
	})

	It("should reject an image too short for any header", func() {
		_, err := rom.Detect(&rom.Image{Data: make([]byte, 4)})
		Expect(err).To(MatchError(rom.ErrNoHeader))
	})

	It("should ignore the header model when the model is forced", func() {
		putHeader(img.Data, rom.BootHeader, 0x4c00, 0x200100, rom.CertMarker, memory.Model(5))
		s, err := rom.DetectAs(img, memory.V200)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Model).To(Equal(memory.V200))

		_, err = rom.DetectAs(img, memory.Model(5))
		Expect(err).To(MatchError(rom.ErrUnknownModel))
	})
})

var _ = Describe("Load", func() {
	It("should read an image from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "ti89.rom")
		data := make([]byte, 0x100)
		data[0] = 0xab
		Expect(os.WriteFile(path, data, 0644)).To(Succeed())

		img, err := rom.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Data).To(HaveLen(0x100))
		Expect(img.Data[0]).To(Equal(byte(0xab)))
		Expect(img.Path).To(Equal(path))
	})

	It("should reject odd-sized images", func() {
		path := filepath.Join(GinkgoT().TempDir(), "odd.rom")
		Expect(os.WriteFile(path, make([]byte, 0x101), 0644)).To(Succeed())
		_, err := rom.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("should fail for a missing file", func() {
		_, err := rom.Load(filepath.Join(GinkgoT().TempDir(), "missing.rom"))
		Expect(err).To(HaveOccurred())
	})
})
