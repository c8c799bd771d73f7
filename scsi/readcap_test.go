// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeCapacity10(t *testing.T) {
	assert := assert.New(t)

	// 16 GiB device with 512 byte blocks: last LBA 0x01ffffff
	buf := []byte{0x01, 0xff, 0xff, 0xff, 0x00, 0x00, 0x02, 0x00}

	cap10, err := DecodeCapacity10(buf)
	assert.NoError(err)
	assert.Equal(uint32(0x01ffffff), cap10.LastLBA)
	assert.Equal(uint32(512), cap10.BlockSize)
	assert.Equal(uint64(16*1024*1024*1024), cap10.Bytes())
	assert.False(cap10.Overflow())

	_, err = DecodeCapacity10(buf[:4])
	assert.Error(err)
}

func TestDecodeCapacity10Overflow(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x02, 0x00}

	cap10, err := DecodeCapacity10(buf)
	assert.NoError(t, err)
	assert.True(t, cap10.Overflow())
}

func TestDecodeCapacity16(t *testing.T) {
	assert := assert.New(t)

	// 4 TB device, 512 byte logical blocks in 4096 byte physical blocks
	// (lbppbe=3), type 1 protection enabled, thin provisioned with read
	// zeros, lowest aligned LBA 1
	buf := []byte{
		0x00, 0x00, 0x00, 0x01, 0xd1, 0xc0, 0xff, 0xff, // last LBA
		0x00, 0x00, 0x02, 0x00, // block length
		0x11,       // rc_basis=1, p_type=0, prot_en=1
		0x23,       // p_i_exponent=2, lbppbe=3
		0xc0, 0x01, // lbpme=1, lbprz=1, lowest aligned=1
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	cap16, err := DecodeCapacity16(buf)
	assert.NoError(err)
	assert.Equal(uint64(0x1d1c0ffff), cap16.LastLBA)
	assert.Equal(uint32(512), cap16.BlockSize)
	assert.Equal(uint8(1), cap16.RcBasis)
	assert.Equal(uint8(0), cap16.ProtType)
	assert.True(cap16.ProtEnabled)
	assert.Equal(uint8(2), cap16.PiExponent)
	assert.Equal(uint8(3), cap16.Lbppbe)
	assert.Equal(uint32(4096), cap16.PhysBlockSize())
	assert.True(cap16.Lbpme)
	assert.True(cap16.Lbprz)
	assert.Equal(uint16(1), cap16.LowestAligned)
	assert.Equal(uint64(0x1d1c10000)*512, cap16.Bytes())
	assert.Equal("last LBA on logical unit", cap16.RcBasisString())

	_, err = DecodeCapacity16(buf[:16])
	assert.Error(err)
}
