// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Standard INQUIRY data as returned by a QEMU virtual disk.
var qemuInquiry = append([]byte{
	0x00, 0x00, 0x05, 0x12, 0x1f, 0x00, 0x00, 0x32,
	'Q', 'E', 'M', 'U', ' ', ' ', ' ', ' ',
	'Q', 'E', 'M', 'U', ' ', 'H', 'A', 'R', 'D', 'D', 'I', 'S', 'K', ' ', ' ', ' ',
	'2', '.', '5', '+',
}, make([]byte, 60)...)

func TestDecodeInquiry(t *testing.T) {
	assert := assert.New(t)

	inq, err := decodeInquiry(qemuInquiry)
	assert.NoError(err)
	assert.Equal(uint8(0), inq.PeripheralQualifier)
	assert.Equal(uint8(0), inq.PeripheralDevType)
	assert.Equal("disk", inq.DevTypeName())
	assert.False(inq.Removable)
	assert.Equal(uint8(0x05), inq.Version)
	assert.Equal("QEMU", inq.VendorIdent)
	assert.Equal("QEMU HARDDISK", inq.ProductIdent)
	assert.Equal("2.5+", inq.ProductRev)
	assert.True(inq.Wbus16)
	assert.True(inq.Sync)
	assert.True(inq.CmdQue)

	_, err = decodeInquiry(qemuInquiry[:20])
	assert.Error(err)
}

func TestInquiryCDB(t *testing.T) {
	assert := assert.New(t)

	cdb := inquiryCDB(false, 0, 96)
	assert.Equal(CDB6{SCSI_INQUIRY, 0x00, 0x00, 0x00, 0x60, 0x00}, cdb)

	// EVPD bit and page code set for a VPD page fetch, 16-bit allocation length
	cdb = inquiryCDB(true, VPD_UNIT_SERIAL_NUM, 0x0200)
	assert.Equal(CDB6{SCSI_INQUIRY, 0x01, 0x80, 0x02, 0x00, 0x00}, cdb)
}

func TestCommandName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("TEST UNIT READY", CommandName([]byte{0x00, 0, 0, 0, 0, 0}))
	assert.Equal("INQUIRY", CommandName([]byte{0x12, 0, 0, 0, 0x60, 0}))
	assert.Equal("READ CAPACITY (10)", CommandName([]byte{0x25}))
	assert.Equal("READ CAPACITY (16)", CommandName([]byte{0x9e, 0x10}))
	assert.Equal("<unknown opcode>", CommandName([]byte{0xc3}))
	assert.Equal("<empty cdb>", CommandName(nil))
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "Good", StatusName(STATUS_GOOD))
	assert.Equal(t, "Check Condition", StatusName(STATUS_CHECK_CONDITION))
	assert.Equal(t, "Unknown status [0x55]", StatusName(0x55))
}
