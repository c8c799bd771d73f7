// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package scsi

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSgIoHdrSize(t *testing.T) {
	// The struct is passed by pointer to the kernel, so its layout must
	// match <scsi/sg.h> exactly (88 bytes on 64-bit platforms).
	assert.Equal(t, uintptr(88), unsafe.Sizeof(sgIoHdr{}))
}

func TestParseSenseFixed(t *testing.T) {
	assert := assert.New(t)

	// Fixed format, current error, NOT READY, "logical unit is in process
	// of becoming ready"
	buf := []byte{
		0x70, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x0a,
		0x00, 0x00, 0x00, 0x00, 0x04, 0x01, 0x00, 0x00,
		0x00, 0x00,
	}

	s, ok := ParseSense(buf)
	assert.True(ok)
	assert.False(s.Descriptor)
	assert.False(s.Deferred)
	assert.Equal(uint8(SK_NOT_READY), s.SenseKey)
	assert.Equal(uint8(0x04), s.Asc)
	assert.Equal(uint8(0x01), s.Ascq)
	assert.Equal("Not Ready", SenseKeyName(s.SenseKey))

	assert.Equal(CatNotReady, CategorizeSense(s))
}

func TestParseSenseFixedInfoField(t *testing.T) {
	assert := assert.New(t)

	// Valid bit set, MEDIUM ERROR with the failing LBA in the info field
	// and a field pointer in the sense key specific bytes
	buf := []byte{
		0xf0, 0x00, 0x03, 0x00, 0x12, 0x34, 0x56, 0x0a,
		0x00, 0x00, 0x00, 0x00, 0x11, 0x04, 0x00, 0x80,
		0x00, 0x07,
	}

	s, ok := ParseSense(buf)
	assert.True(ok)
	assert.True(s.InfoValid)
	assert.Equal(uint32(0x00123456), s.Info)
	assert.Equal(uint16(7), s.FieldPointer)
	assert.Equal(CatMediumHard, CategorizeSense(s))
}

func TestParseSenseDescriptor(t *testing.T) {
	assert := assert.New(t)

	// Descriptor format, ILLEGAL REQUEST, "invalid field in cdb"
	buf := []byte{0x72, 0x05, 0x24, 0x00, 0x00, 0x00, 0x00, 0x00}

	s, ok := ParseSense(buf)
	assert.True(ok)
	assert.True(s.Descriptor)
	assert.Equal(uint8(SK_ILLEGAL_REQUEST), s.SenseKey)
	assert.Equal(uint8(0x24), s.Asc)
	assert.Equal(uint8(0x00), s.Ascq)
	assert.Equal(CatIllegalRequest, CategorizeSense(s))
}

func TestParseSenseRejectsGarbage(t *testing.T) {
	_, ok := ParseSense(nil)
	assert.False(t, ok)

	_, ok = ParseSense([]byte{0x42, 0x00, 0x00})
	assert.False(t, ok)
}

func TestInvalidOpcodeCategory(t *testing.T) {
	// ILLEGAL REQUEST with asc 0x20 means the opcode itself is not
	// supported, which gets its own category (and exit status)
	s := SenseData{SenseKey: SK_ILLEGAL_REQUEST, Asc: 0x20}
	assert.Equal(t, CatInvalidOp, CategorizeSense(s))

	s.Ascq = 0x01
	assert.Equal(t, CatIllegalRequest, CategorizeSense(s))
}

func TestProgressIndicationFixed(t *testing.T) {
	assert := assert.New(t)

	// NOT READY, "format in progress", SKSV set, progress 0x8000 (50%)
	buf := []byte{
		0x70, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x0a,
		0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x00, 0x80,
		0x80, 0x00,
	}

	progress, ok := ProgressIndication(buf)
	assert.True(ok)
	assert.Equal(0x8000, progress)

	// Same buffer without the SKSV bit carries no progress indication
	buf[15] = 0x00
	_, ok = ProgressIndication(buf)
	assert.False(ok)
}

func TestProgressIndicationDescriptor(t *testing.T) {
	assert := assert.New(t)

	// Descriptor format NO SENSE with a sense key specific descriptor
	// (type 0x02) carrying progress 0x4000 (25%)
	buf := []byte{
		0x72, 0x00, 0x04, 0x04, 0x00, 0x00, 0x00, 0x08,
		0x02, 0x06, 0x00, 0x00, 0x80, 0x40, 0x00, 0x00,
	}

	progress, ok := ProgressIndication(buf)
	assert.True(ok)
	assert.Equal(0x4000, progress)
}

func TestProgressIndicationWrongKey(t *testing.T) {
	// MEDIUM ERROR does not carry a progress indication even if SKSV is set
	buf := []byte{
		0x70, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x0a,
		0x00, 0x00, 0x00, 0x00, 0x11, 0x00, 0x00, 0x80,
		0x80, 0x00,
	}

	_, ok := ProgressIndication(buf)
	assert.False(t, ok)
}

func TestCategorize(t *testing.T) {
	assert := assert.New(t)

	// Clean completion
	assert.Equal(CatClean, Categorize(IoResult{}))

	// CHECK CONDITION with unit attention sense
	res := IoResult{
		ScsiStatus: STATUS_CHECK_CONDITION,
		Info:       SG_INFO_OK_MASK,
		Sense:      []byte{0x70, 0x00, 0x06, 0x00, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00, 0x29, 0x00},
	}
	assert.Equal(CatUnitAttention, Categorize(res))

	// Transport level failure without sense
	res = IoResult{HostStatus: 0x07, Info: SG_INFO_OK_MASK}
	assert.Equal(CatOther, Categorize(res))
}

func TestCategoryExitStatus(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, CatClean.ExitStatus())
	assert.Equal(0, CatRecovered.ExitStatus())
	assert.Equal(0, CatNoSense.ExitStatus())
	assert.Equal(2, CatNotReady.ExitStatus())
	assert.Equal(6, CatUnitAttention.ExitStatus())
	assert.Equal(9, CatInvalidOp.ExitStatus())

	assert.True(CatRecovered.Successful())
	assert.False(CatNotReady.Successful())
}

func TestCheckResult(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(CheckResult("TEST UNIT READY", IoResult{}))

	res := IoResult{
		ScsiStatus: STATUS_CHECK_CONDITION,
		Info:       SG_INFO_OK_MASK,
		Sense:      []byte{0x70, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00, 0x3a, 0x00},
	}

	err := CheckResult("TEST UNIT READY", res)
	assert.Error(err)

	cmdErr, ok := err.(*CommandError)
	assert.True(ok)
	assert.Equal(CatNotReady, cmdErr.Category)
	assert.True(cmdErr.HasSense)
	assert.Equal(uint8(0x3a), cmdErr.Sense.Asc)
	assert.Contains(cmdErr.Error(), "Not Ready")
	assert.Equal(2, ErrorExitStatus(err))
}
