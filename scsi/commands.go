// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI command definitions.

package scsi

import "fmt"

// SCSI commands used by this package
const (
	SCSI_TEST_UNIT_READY      = 0x00
	SCSI_REQUEST_SENSE        = 0x03
	SCSI_INQUIRY              = 0x12
	SCSI_MODE_SENSE_6         = 0x1a
	SCSI_READ_CAPACITY_10     = 0x25
	SCSI_SERVICE_ACTION_IN_16 = 0x9e

	// READ CAPACITY (16) is SERVICE ACTION IN (16) with this service action
	SAI_READ_CAPACITY_16 = 0x10

	// Minimum length of standard INQUIRY response
	INQ_REPLY_LEN = 36

	// Default REQUEST SENSE allocation length
	DEF_REQ_SENSE_LEN = 252

	// READ CAPACITY parameter data lengths
	RCAP10_REPLY_LEN = 8
	RCAP16_REPLY_LEN = 32
)

// SCSI status byte values (see https://www.t10.org/lists/2status.htm)
const (
	STATUS_GOOD            = 0x00
	STATUS_CHECK_CONDITION = 0x02
	STATUS_CONDITION_MET   = 0x04
	STATUS_BUSY            = 0x08
	STATUS_RESERV_CONFLICT = 0x18
	STATUS_TASK_SET_FULL   = 0x28
	STATUS_ACA_ACTIVE      = 0x30
	STATUS_TASK_ABORTED    = 0x40
)

var statusNames = map[uint8]string{
	STATUS_GOOD:            "Good",
	STATUS_CHECK_CONDITION: "Check Condition",
	STATUS_CONDITION_MET:   "Condition Met",
	STATUS_BUSY:            "Busy",
	STATUS_RESERV_CONFLICT: "Reservation Conflict",
	STATUS_TASK_SET_FULL:   "Task Set Full",
	STATUS_ACA_ACTIVE:      "ACA Active",
	STATUS_TASK_ABORTED:    "Task Aborted",
}

// StatusName returns the name of a SCSI status byte value.
func StatusName(status uint8) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return fmt.Sprintf("Unknown status [%#02x]", status)
}

// SCSI CDB types
type CDB6 [6]byte
type CDB10 [10]byte
type CDB16 [16]byte

// Opcode names for the commands this package knows how to build, plus a few
// neighbours commonly seen when decoding a CDB offline.
var opcodeNames = map[uint8]string{
	SCSI_TEST_UNIT_READY:  "TEST UNIT READY",
	SCSI_REQUEST_SENSE:    "REQUEST SENSE",
	0x08:                  "READ (6)",
	0x0a:                  "WRITE (6)",
	SCSI_INQUIRY:          "INQUIRY",
	SCSI_MODE_SENSE_6:     "MODE SENSE (6)",
	0x1b:                  "START STOP UNIT",
	SCSI_READ_CAPACITY_10: "READ CAPACITY (10)",
	0x28:                  "READ (10)",
	0x2a:                  "WRITE (10)",
	0x35:                  "SYNCHRONIZE CACHE (10)",
	0x4d:                  "LOG SENSE",
	0x5a:                  "MODE SENSE (10)",
	0x85:                  "ATA PASS-THROUGH (16)",
	0x88:                  "READ (16)",
	0x8a:                  "WRITE (16)",
	0xa0:                  "REPORT LUNS",
	0xa8:                  "READ (12)",
	0xaa:                  "WRITE (12)",
}

// Service action names for SERVICE ACTION IN (16)
var serviceActionIn16Names = map[uint8]string{
	SAI_READ_CAPACITY_16: "READ CAPACITY (16)",
	0x12:                 "GET LBA STATUS",
}

// CommandName returns the name of the SCSI command that a CDB describes,
// taking the service action into account for SERVICE ACTION IN (16).
func CommandName(cdb []byte) string {
	if len(cdb) == 0 {
		return "<empty cdb>"
	}

	opcode := cdb[0]
	if opcode == SCSI_SERVICE_ACTION_IN_16 && len(cdb) > 1 {
		if name, ok := serviceActionIn16Names[cdb[1]&0x1f]; ok {
			return name
		}
		return "SERVICE ACTION IN (16), unknown service action"
	}

	if name, ok := opcodeNames[opcode]; ok {
		return name
	}

	return "<unknown opcode>"
}
