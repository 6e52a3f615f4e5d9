// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/beevik/go68k/memory"
)

type fakePorts struct {
	stores map[uint32]byte
	value  byte
}

func (p *fakePorts) LoadPort(addr uint32) byte {
	return p.value
}

func (p *fakePorts) StorePort(addr uint32, v byte) {
	p.stores[addr] = v
}

var _ = Describe("Router", func() {
	var (
		ports *fakePorts
		image []byte
	)

	BeforeEach(func() {
		ports = &fakePorts{stores: make(map[uint32]byte), value: 0xff}
		image = make([]byte, 0x30000)
		image[0] = 0x12
		image[1] = 0x34
	})

	newRouter := func(model memory.Model) *memory.Router {
		r, err := memory.NewRouter(model, image, ports)
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	Describe("construction", func() {
		It("should reject an unknown model", func() {
			_, err := memory.NewRouter(memory.Model(42), image, ports)
			Expect(err).To(HaveOccurred())
		})

		It("should reject an image larger than the flash device", func() {
			_, err := memory.NewRouter(memory.TI89, make([]byte, 3<<20), ports)
			Expect(err).To(MatchError(memory.ErrImageSize))
		})

		It("should map the image at the flash base", func() {
			r := newRouter(memory.TI92Plus)
			Expect(r.LoadWord(0x400000)).To(Equal(uint16(0x1234)))
			Expect(r.LoadByte(0x400000 + 0x30000)).To(Equal(byte(0xff)))
		})
	})

	Describe("RAM", func() {
		It("should ghost RAM through the RAM window", func() {
			r := newRouter(memory.TI89)
			r.StoreByte(0x000010, 0xaa)
			Expect(r.LoadByte(0x040010)).To(Equal(byte(0xaa)))
			Expect(r.LoadByte(0x1c0010)).To(Equal(byte(0xaa)))
		})

		It("should not ghost RAM on the TI-89 Titanium", func() {
			r := newRouter(memory.TI89Titanium)
			r.StoreByte(0x000010, 0xaa)
			r.StoreByte(0x040020, 0x55)
			Expect(r.LoadByte(0x040010)).To(Equal(byte(0)))
			Expect(r.LoadByte(0x040020)).To(Equal(byte(0)))
			Expect(r.LoadByte(0x000020)).To(Equal(byte(0)))
		})

		It("should ignore bit 0 on word and long accesses", func() {
			r := newRouter(memory.TI89)
			r.StoreWord(0x1001, 0xbeef)
			Expect(r.LoadWord(0x1000)).To(Equal(uint16(0xbeef)))

			r.StoreLong(0x2000, 0x11223344)
			Expect(r.LoadLong(0x2001)).To(Equal(uint32(0x11223344)))
			Expect(r.LoadByte(0x2003)).To(Equal(byte(0x44)))
		})

		It("should clear RAM on request", func() {
			r := newRouter(memory.TI89)
			r.StoreByte(0x100, 1)
			r.ClearRAM()
			Expect(r.LoadByte(0x100)).To(Equal(byte(0)))
		})
	})

	Describe("ports and unmapped space", func() {
		It("should route the port window to the port bank", func() {
			r := newRouter(memory.TI89)
			r.StoreByte(0x600005, 0x12)
			r.StoreWord(0x600010, 0xabcd)
			Expect(ports.stores).To(HaveKeyWithValue(uint32(0x600005), byte(0x12)))
			Expect(ports.stores).To(HaveKeyWithValue(uint32(0x600010), byte(0xab)))
			Expect(ports.stores).To(HaveKeyWithValue(uint32(0x600011), byte(0xcd)))
			Expect(r.LoadByte(0x60001b)).To(Equal(byte(0xff)))
		})

		It("should read zero from unmapped addresses", func() {
			r := newRouter(memory.TI92Plus)
			r.StoreByte(0x300000, 0x12)
			Expect(r.LoadByte(0x300000)).To(Equal(byte(0)))
			Expect(r.LoadLong(0xc00000)).To(Equal(uint32(0)))
		})
	})
})
