// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/beevik/go68k/memory"
)

var _ = Describe("Flash", func() {
	const (
		base  = 0x200000 // TI-89 flash window
		block = base + 0x10000
	)

	var r *memory.Router

	BeforeEach(func() {
		image := make([]byte, 0x30000)
		var err error
		r, err = memory.NewRouter(memory.TI89, image, nil)
		Expect(err).NotTo(HaveOccurred())
		r.SetPCSource(func() uint32 { return 0x001000 })
	})

	It("should start in read-array mode with the normal strategy", func() {
		Expect(r.Flash().State()).To(Equal(memory.ReadArray))
		Expect(r.Special()).To(BeFalse())
	})

	It("should not change the array on plain writes", func() {
		r.StoreWord(block, 0x1234)
		Expect(r.LoadWord(block)).To(Equal(uint16(0)))
	})

	Describe("block erase", func() {
		BeforeEach(func() {
			r.StoreWord(block, 0x0020)
			Expect(r.Flash().State()).To(Equal(memory.EraseSetup))
			r.StoreWord(block+0x1234, 0x00d0)
		})

		It("should switch to the special strategy on the confirm write", func() {
			Expect(r.Flash().State()).To(Equal(memory.EraseConfirmed))
			Expect(r.Special()).To(BeTrue())
			Expect(r.LoadWord(base)).To(Equal(uint16(0xffff)))
		})

		It("should fill the 64KiB block with ones", func() {
			r.StoreWord(base, 0x00ff)
			Expect(r.Special()).To(BeFalse())
			Expect(r.LoadWord(block)).To(Equal(uint16(0xffff)))
			Expect(r.LoadLong(block + 0xfffc)).To(Equal(uint32(0xffffffff)))
			Expect(r.LoadByte(block - 1)).To(Equal(byte(0)))
			Expect(r.LoadByte(block + 0x10000)).To(Equal(byte(0)))
		})

		It("should return to array reads after clear status", func() {
			r.StoreByte(base, 0x50)
			Expect(r.Special()).To(BeFalse())
			Expect(r.LoadWord(base)).To(Equal(uint16(0)))
		})
	})

	It("should ignore a confirm without an erase setup", func() {
		r.StoreWord(block, 0x00d0)
		Expect(r.Special()).To(BeFalse())
		Expect(r.LoadWord(block)).To(Equal(uint16(0)))
	})

	Describe("programming", func() {
		const target = base + 0x100000 // erased, past the image

		It("should AND one write into the array", func() {
			r.StoreWord(target, 0x0040)
			Expect(r.Flash().State()).To(Equal(memory.WriteReady))
			r.StoreWord(target, 0x1234)
			Expect(r.LoadWord(target)).To(Equal(uint16(0xffff)))

			r.StoreWord(target, 0x00ff)
			Expect(r.LoadWord(target)).To(Equal(uint16(0x1234)))
		})

		It("should only clear bits", func() {
			r.StoreWord(target, 0x0010)
			r.StoreWord(target, 0x1234)
			r.StoreWord(target, 0x0010)
			r.StoreWord(target, 0x00ff)
			r.StoreWord(target, 0x00ff)
			Expect(r.LoadWord(target)).To(Equal(uint16(0x0034)))
		})

		It("should treat the write after a program as a command", func() {
			r.StoreWord(target, 0x0010)
			r.StoreWord(target, 0xff00)
			r.StoreWord(target+2, 0x00ff)
			Expect(r.Special()).To(BeFalse())
			Expect(r.LoadWord(target)).To(Equal(uint16(0xff00)))
			Expect(r.LoadWord(target + 2)).To(Equal(uint16(0xffff)))
		})
	})

	It("should return identifier codes", func() {
		r.StoreWord(base, 0x0090)
		Expect(r.Special()).To(BeTrue())
		Expect(r.LoadWord(base)).To(Equal(uint16(memory.ManufacturerCode)))
		Expect(r.LoadWord(base + 2)).To(Equal(uint16(memory.DeviceCode)))
		Expect(r.LoadWord(block + 2)).To(Equal(uint16(memory.DeviceCode)))

		r.StoreWord(base, 0x00ff)
		Expect(r.LoadWord(base)).To(Equal(uint16(0)))
	})

	It("should ignore commands issued from flash", func() {
		r.SetPCSource(func() uint32 { return base + 0x400 })
		r.StoreWord(block, 0x0020)
		r.StoreWord(block, 0x00d0)
		Expect(r.Special()).To(BeFalse())
		Expect(r.Flash().State()).To(Equal(memory.ReadArray))
		Expect(r.LoadWord(block)).To(Equal(uint16(0)))
	})

	It("should return to read-array mode on reset", func() {
		r.StoreWord(base, 0x0090)
		r.Reset()
		Expect(r.Special()).To(BeFalse())
		Expect(r.Flash().State()).To(Equal(memory.ReadArray))
		Expect(r.LoadWord(base)).To(Equal(uint16(0)))
	})
})
