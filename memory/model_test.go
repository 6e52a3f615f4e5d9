// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/beevik/go68k/memory"
)

var _ = Describe("Model", func() {
	It("should parse the name of every model", func() {
		for _, m := range memory.Models() {
			parsed, err := memory.ParseModel(" " + m.String() + " ")
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(m))
		}
		parsed, err := memory.ParseModel("TI89T")
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(memory.TI89Titanium))
	})

	It("should reject an unknown name", func() {
		_, err := memory.ParseModel("ti83")
		Expect(err).To(MatchError(ContainSubstring("unknown model")))
		Expect(memory.Model(42).String()).To(Equal("model(42)"))
	})

	It("should bound physical RAM and the flash window", func() {
		l, ok := memory.TI89Titanium.Layout()
		Expect(ok).To(BeTrue())
		Expect(l.InRAM(memory.RAMSize - 1)).To(BeTrue())
		Expect(l.InRAM(memory.RAMSize)).To(BeFalse())
		Expect(l.InFlash(0x800000)).To(BeTrue())
		Expect(l.InFlash(0x800000 + 4<<20)).To(BeFalse())

		_, ok = memory.Model(42).Layout()
		Expect(ok).To(BeFalse())
	})
})
