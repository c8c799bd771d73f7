// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI READ CAPACITY (10) and READ CAPACITY (16) commands and parameter data
// decoding.

package scsi

import (
	"encoding/binary"
	"fmt"
)

// Capacity10 is the decoded READ CAPACITY (10) parameter data: bytes 0..3
// hold the last logical block address, bytes 4..7 the block length.
type Capacity10 struct {
	LastLBA   uint32 `json:"returned_logical_block_address"`
	BlockSize uint32 `json:"logical_block_length_in_bytes"`
}

// Overflow reports whether the capacity does not fit in the 10-byte
// response, meaning READ CAPACITY (16) must be used instead.
func (c Capacity10) Overflow() bool {
	return c.LastLBA == 0xffffffff
}

// Bytes returns the device size implied by the parameter data.
func (c Capacity10) Bytes() uint64 {
	return (uint64(c.LastLBA) + 1) * uint64(c.BlockSize)
}

// Capacity16 is the decoded READ CAPACITY (16) parameter data.
type Capacity16 struct {
	LastLBA       uint64 `json:"returned_logical_block_address"`
	BlockSize     uint32 `json:"logical_block_length_in_bytes"`
	RcBasis       uint8  `json:"rc_basis"`
	ProtType      uint8  `json:"p_type"`
	ProtEnabled   bool   `json:"prot_en"`
	PiExponent    uint8  `json:"p_i_exponent"`
	Lbppbe        uint8  `json:"logical_blocks_per_physical_block_exponent"`
	Lbpme         bool   `json:"lbpme"`
	Lbprz         bool   `json:"lbprz"`
	LowestAligned uint16 `json:"lowest_aligned_logical_block_address"`
}

func (c Capacity16) Bytes() uint64 {
	return (c.LastLBA + 1) * uint64(c.BlockSize)
}

// PhysBlockSize derives the physical block length from the logical blocks
// per physical block exponent.
func (c Capacity16) PhysBlockSize() uint32 {
	return c.BlockSize * (1 << c.Lbppbe)
}

// RcBasisString explains the ZBC rc_basis field.
func (c Capacity16) RcBasisString() string {
	switch c.RcBasis {
	case 0:
		return "last contiguous that's not seq write required"
	case 1:
		return "last LBA on logical unit"
	default:
		return fmt.Sprintf("reserved (%#x)", c.RcBasis)
	}
}

// DecodeCapacity10 maps the positional layout of the READ CAPACITY (10)
// parameter data to named fields.
func DecodeCapacity10(buf []byte) (Capacity10, error) {
	if len(buf) < RCAP10_REPLY_LEN {
		return Capacity10{}, fmt.Errorf("READ CAPACITY (10) response truncated: %d bytes", len(buf))
	}

	return Capacity10{
		LastLBA:   binary.BigEndian.Uint32(buf[0:4]),
		BlockSize: binary.BigEndian.Uint32(buf[4:8]),
	}, nil
}

// DecodeCapacity16 maps the positional layout of the READ CAPACITY (16)
// parameter data to named fields.
func DecodeCapacity16(buf []byte) (Capacity16, error) {
	if len(buf) < RCAP16_REPLY_LEN {
		return Capacity16{}, fmt.Errorf("READ CAPACITY (16) response truncated: %d bytes", len(buf))
	}

	return Capacity16{
		LastLBA:       binary.BigEndian.Uint64(buf[0:8]),
		BlockSize:     binary.BigEndian.Uint32(buf[8:12]),
		RcBasis:       (buf[12] >> 4) & 0x3,
		ProtType:      (buf[12] >> 1) & 0x7,
		ProtEnabled:   buf[12]&0x01 != 0,
		PiExponent:    (buf[13] >> 4) & 0xf,
		Lbppbe:        buf[13] & 0xf,
		Lbpme:         buf[14]&0x80 != 0,
		Lbprz:         buf[14]&0x40 != 0,
		LowestAligned: uint16(buf[14]&0x3f)<<8 | uint16(buf[15]),
	}, nil
}

// ReadCapacity10 issues a READ CAPACITY (10) command. With pmi set, lba
// gives the LBA after which the first delay (e.g. head movement) occurs.
// The raw parameter data is returned alongside the decoded form.
func (d *Device) ReadCapacity10(pmi bool, lba uint32) (Capacity10, []byte, error) {
	var cdb CDB10

	cdb[0] = SCSI_READ_CAPACITY_10
	if pmi {
		cdb[8] |= 0x01
		binary.BigEndian.PutUint32(cdb[2:6], lba)
	}

	buf := make([]byte, RCAP10_REPLY_LEN)

	res, err := d.Exec(cdb[:], SG_DXFER_FROM_DEV, buf)
	if err != nil {
		return Capacity10{}, nil, err
	}
	if err := CheckResult("READ CAPACITY (10)", res); err != nil {
		return Capacity10{}, nil, err
	}

	cap10, err := DecodeCapacity10(buf)
	return cap10, buf, err
}

// ReadCapacity16 issues a READ CAPACITY (16) command (SERVICE ACTION IN (16)
// with the READ CAPACITY (16) service action).
func (d *Device) ReadCapacity16(pmi bool, lba uint64) (Capacity16, []byte, error) {
	var cdb CDB16

	cdb[0] = SCSI_SERVICE_ACTION_IN_16
	cdb[1] = SAI_READ_CAPACITY_16
	binary.BigEndian.PutUint32(cdb[10:14], RCAP16_REPLY_LEN)
	if pmi {
		cdb[14] |= 0x01
		binary.BigEndian.PutUint64(cdb[2:10], lba)
	}

	buf := make([]byte, RCAP16_REPLY_LEN)

	res, err := d.Exec(cdb[:], SG_DXFER_FROM_DEV, buf)
	if err != nil {
		return Capacity16{}, nil, err
	}
	if err := CheckResult("READ CAPACITY (16)", res); err != nil {
		return Capacity16{}, nil, err
	}

	cap16, err := DecodeCapacity16(buf)
	return cap16, buf, err
}
