// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI INQUIRY command and response decoding.

package scsi

import (
	"bytes"
	"fmt"
)

// VPD page codes
const (
	VPD_SUPPORTED_PAGES = 0x00
	VPD_UNIT_SERIAL_NUM = 0x80
	VPD_DEVICE_IDENT    = 0x83
)

var peripheralDevTypes = map[uint8]string{
	0x00: "disk",
	0x01: "tape",
	0x02: "printer",
	0x03: "processor",
	0x04: "write once optical disk",
	0x05: "cd/dvd",
	0x06: "scanner",
	0x07: "optical memory device",
	0x08: "medium changer",
	0x0c: "storage array controller",
	0x0d: "enclosure services device",
	0x0e: "simplified direct access device",
	0x11: "object based storage",
	0x14: "host managed zoned block",
	0x1f: "no physical device on this lu",
}

// InquiryResponse is the decoded standard INQUIRY data (first 36 bytes).
type InquiryResponse struct {
	PeripheralQualifier uint8  `json:"peripheral_qualifier"`
	PeripheralDevType   uint8  `json:"peripheral_device_type"`
	Removable           bool   `json:"rmb"`
	Version             uint8  `json:"version"`
	VendorIdent         string `json:"vendor_identification"`
	ProductIdent        string `json:"product_identification"`
	ProductRev          string `json:"product_revision_level"`

	// Capability flags from byte 7 (kept for the sg_simple summary line)
	Wbus16 bool `json:"wbus16"`
	Sync   bool `json:"sync"`
	CmdQue bool `json:"cmdque"`
}

// decodeInquiry maps the positional layout of the standard INQUIRY data to
// named fields. The buffer must hold at least INQ_REPLY_LEN bytes.
func decodeInquiry(buf []byte) (InquiryResponse, error) {
	if len(buf) < INQ_REPLY_LEN {
		return InquiryResponse{}, fmt.Errorf("INQUIRY response truncated: %d bytes", len(buf))
	}

	fixup := func(b []byte) string {
		return string(bytes.TrimSpace(bytes.TrimRight(b, "\x00")))
	}

	return InquiryResponse{
		PeripheralQualifier: buf[0] >> 5,
		PeripheralDevType:   buf[0] & 0x1f,
		Removable:           buf[1]&0x80 != 0,
		Version:             buf[2],
		VendorIdent:         fixup(buf[8:16]),
		ProductIdent:        fixup(buf[16:32]),
		ProductRev:          fixup(buf[32:36]),
		Wbus16:              buf[7]&0x20 != 0,
		Sync:                buf[7]&0x10 != 0,
		CmdQue:              buf[7]&0x02 != 0,
	}, nil
}

func (r InquiryResponse) DevTypeName() string {
	if name, ok := peripheralDevTypes[r.PeripheralDevType]; ok {
		return name
	}
	return fmt.Sprintf("reserved [%#x]", r.PeripheralDevType)
}

func (r InquiryResponse) String() string {
	return fmt.Sprintf("%.8s  %.16s  %.4s  [%s]",
		r.VendorIdent, r.ProductIdent, r.ProductRev, r.DevTypeName())
}

// inquiryCDB builds a 6-byte INQUIRY CDB. The allocation length occupies
// bytes 3..4 (big-endian) since SPC-3.
func inquiryCDB(evpd bool, page uint8, allocLen uint16) CDB6 {
	cdb := CDB6{SCSI_INQUIRY, 0, page, byte(allocLen >> 8), byte(allocLen), 0}
	if evpd {
		cdb[1] |= 0x01
	}
	return cdb
}

// Inquiry issues a standard INQUIRY and returns the decoded response along
// with the raw parameter data.
func (d *Device) Inquiry(allocLen uint16) (InquiryResponse, []byte, error) {
	if allocLen < INQ_REPLY_LEN {
		allocLen = INQ_REPLY_LEN
	}

	cdb := inquiryCDB(false, 0, allocLen)
	buf := make([]byte, allocLen)

	res, err := d.Exec(cdb[:], SG_DXFER_FROM_DEV, buf)
	if err != nil {
		return InquiryResponse{}, nil, err
	}
	if err := CheckResult("INQUIRY", res); err != nil {
		return InquiryResponse{}, nil, err
	}

	inq, err := decodeInquiry(buf)
	return inq, buf, err
}

// InquiryVPD issues an INQUIRY for the given VPD page and returns the page
// body truncated to the page length field.
func (d *Device) InquiryVPD(page uint8, allocLen uint16) ([]byte, error) {
	cdb := inquiryCDB(true, page, allocLen)
	buf := make([]byte, allocLen)

	res, err := d.Exec(cdb[:], SG_DXFER_FROM_DEV, buf)
	if err != nil {
		return nil, err
	}
	if err := CheckResult(fmt.Sprintf("INQUIRY (VPD page %#02x)", page), res); err != nil {
		return nil, err
	}

	if len(buf) < 4 || buf[1] != page {
		return nil, fmt.Errorf("VPD page %#02x: malformed response", page)
	}

	pageLen := int(buf[2])<<8 | int(buf[3])
	if pageLen > len(buf)-4 {
		pageLen = len(buf) - 4
	}

	return buf[:4+pageLen], nil
}

// SerialNumber fetches the unit serial number VPD page (0x80).
func (d *Device) SerialNumber() (string, error) {
	page, err := d.InquiryVPD(VPD_UNIT_SERIAL_NUM, 252)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(page[4:])), nil
}
