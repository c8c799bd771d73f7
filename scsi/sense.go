// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI sense data normalization and classification of completed commands.
//
// Sense buffers come in two recognized flavours: fixed format (response
// codes 0x70 / 0x71) and descriptor format (0x72 / 0x73). Both carry a sense
// key, additional sense code (ASC) and additional sense code qualifier
// (ASCQ), from which the outcome of a command is classified into a small set
// of categories with sg3_utils-compatible exit statuses.

package scsi

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Sense response codes (byte 0, low 7 bits)
const (
	SENSE_FIXED_CURRENT  = 0x70
	SENSE_FIXED_DEFERRED = 0x71
	SENSE_DESC_CURRENT   = 0x72
	SENSE_DESC_DEFERRED  = 0x73
)

// Sense keys (SPC-4 table 54)
const (
	SK_NO_SENSE        = 0x0
	SK_RECOVERED_ERROR = 0x1
	SK_NOT_READY       = 0x2
	SK_MEDIUM_ERROR    = 0x3
	SK_HARDWARE_ERROR  = 0x4
	SK_ILLEGAL_REQUEST = 0x5
	SK_UNIT_ATTENTION  = 0x6
	SK_DATA_PROTECT    = 0x7
	SK_BLANK_CHECK     = 0x8
	SK_VENDOR_SPECIFIC = 0x9
	SK_COPY_ABORTED    = 0xa
	SK_ABORTED_COMMAND = 0xb
	SK_VOLUME_OVERFLOW = 0xd
	SK_MISCOMPARE      = 0xe
	SK_COMPLETED       = 0xf
)

var senseKeyNames = [16]string{
	"No Sense",
	"Recovered Error",
	"Not Ready",
	"Medium Error",
	"Hardware Error",
	"Illegal Request",
	"Unit Attention",
	"Data Protect",
	"Blank Check",
	"Vendor Specific",
	"Copy Aborted",
	"Aborted Command",
	"Reserved [0xc]",
	"Volume Overflow",
	"Miscompare",
	"Completed",
}

// SenseKeyName returns the SPC name of a sense key value.
func SenseKeyName(key uint8) string {
	if int(key) < len(senseKeyNames) {
		return senseKeyNames[key]
	}
	return fmt.Sprintf("Invalid sense key [%#x]", key)
}

// SenseData is the normalized view of a sense buffer, independent of whether
// the device returned fixed or descriptor format.
type SenseData struct {
	ResponseCode uint8 `json:"response_code"`
	Descriptor   bool  `json:"descriptor_format"`
	Deferred     bool  `json:"deferred"`
	SenseKey     uint8 `json:"sense_key"`
	Asc          uint8 `json:"additional_sense_code"`
	Ascq         uint8 `json:"additional_sense_code_qualifier"`

	// Fixed format extras (zero in descriptor format)
	Info         uint32 `json:"information,omitempty"`
	InfoValid    bool   `json:"information_valid,omitempty"`
	CmdSpecific  uint32 `json:"command_specific,omitempty"`
	FieldPointer uint16 `json:"field_pointer,omitempty"`
	Fruc         uint8  `json:"fru_code,omitempty"`
}

// ParseSense normalizes a raw sense buffer. It returns false if the buffer is
// too short or does not carry a recognized response code.
func ParseSense(buf []byte) (SenseData, bool) {
	var s SenseData

	if len(buf) < 1 {
		return s, false
	}

	s.ResponseCode = buf[0] & 0x7f
	switch s.ResponseCode {
	case SENSE_FIXED_CURRENT, SENSE_FIXED_DEFERRED:
		s.Deferred = s.ResponseCode == SENSE_FIXED_DEFERRED
		if len(buf) < 3 {
			return s, false
		}
		s.SenseKey = buf[2] & 0xf
		if len(buf) > 7 {
			s.InfoValid = buf[0]&0x80 != 0
			s.Info = binary.BigEndian.Uint32(buf[3:7])
		}
		if len(buf) > 12 {
			s.Asc = buf[12]
		}
		if len(buf) > 13 {
			s.Ascq = buf[13]
		}
		if len(buf) > 14 {
			s.Fruc = buf[14]
		}
		if len(buf) > 17 && buf[15]&0x80 != 0 {
			s.FieldPointer = binary.BigEndian.Uint16(buf[16:18])
		}
		if len(buf) > 11 {
			s.CmdSpecific = binary.BigEndian.Uint32(buf[8:12])
		}
		return s, true
	case SENSE_DESC_CURRENT, SENSE_DESC_DEFERRED:
		s.Descriptor = true
		s.Deferred = s.ResponseCode == SENSE_DESC_DEFERRED
		if len(buf) < 4 {
			return s, false
		}
		s.SenseKey = buf[1] & 0xf
		s.Asc = buf[2]
		s.Ascq = buf[3]
		return s, true
	default:
		return s, false
	}
}

// descriptors iterates the descriptor list of a descriptor format sense
// buffer, calling fn with each descriptor type and body (including header).
func descriptors(buf []byte, fn func(dtype uint8, desc []byte) bool) {
	if len(buf) < 8 {
		return
	}

	addLen := int(buf[7])
	if addLen > len(buf)-8 {
		addLen = len(buf) - 8
	}

	db := buf[8 : 8+addLen]
	for len(db) >= 2 {
		dlen := int(db[1]) + 2
		if dlen > len(db) {
			dlen = len(db)
		}
		if !fn(db[0], db[:dlen]) {
			return
		}
		db = db[dlen:]
	}
}

// ProgressIndication extracts a progress indication from a sense buffer, as
// returned by devices that are formatting or otherwise becoming ready. The
// value is a numerator with a denominator of 65536. Only buffers with sense
// key No Sense or Not Ready carry a valid progress field.
func ProgressIndication(buf []byte) (int, bool) {
	s, ok := ParseSense(buf)
	if !ok || (s.SenseKey != SK_NO_SENSE && s.SenseKey != SK_NOT_READY) {
		return 0, false
	}

	if !s.Descriptor {
		// Fixed format: sense key specific bytes 15..17, valid when SKSV set
		if len(buf) > 17 && buf[15]&0x80 != 0 {
			return int(binary.BigEndian.Uint16(buf[16:18])), true
		}
		return 0, false
	}

	progress, found := 0, false
	descriptors(buf, func(dtype uint8, desc []byte) bool {
		// 0x02: sense key specific descriptor
		if dtype == 0x02 && len(desc) >= 7 && desc[4]&0x80 != 0 {
			progress = int(binary.BigEndian.Uint16(desc[5:7]))
			found = true
			return false
		}
		return true
	})

	return progress, found
}

// String renders the normalized sense data in the one-line-per-field style of
// the sg3_utils sense decoder.
func (s SenseData) String() string {
	var b strings.Builder

	fixedDesc := "Fixed format"
	if s.Descriptor {
		fixedDesc = "Descriptor format"
	}
	errType := "current"
	if s.Deferred {
		errType = "deferred"
	}

	fmt.Fprintf(&b, "%s, %s; Sense key: %s\n", fixedDesc, errType, SenseKeyName(s.SenseKey))
	fmt.Fprintf(&b, " Additional sense: asc=%#02x, ascq=%#02x", s.Asc, s.Ascq)

	if s.InfoValid {
		fmt.Fprintf(&b, "\n Info field: %#x", s.Info)
	}
	if s.FieldPointer != 0 {
		fmt.Fprintf(&b, "\n Field pointer: %d", s.FieldPointer)
	}
	if s.Fruc != 0 {
		fmt.Fprintf(&b, "\n Field replaceable unit code: %d", s.Fruc)
	}

	return b.String()
}

// Category classifies the outcome of a completed SCSI command. The values
// double as process exit statuses, compatible with the sg3_utils exit status
// convention.
type Category int

const (
	CatClean          Category = 0
	CatSyntax         Category = 1
	CatNotReady       Category = 2
	CatMediumHard     Category = 3
	CatIllegalRequest Category = 5
	CatUnitAttention  Category = 6
	CatDataProtect    Category = 7
	CatInvalidOp      Category = 9
	CatCopyAborted    Category = 10
	CatAbortedCommand Category = 11
	CatMiscompare     Category = 14
	CatFileError      Category = 15
	CatNoSense        Category = 20
	CatRecovered      Category = 21
	CatMalformed      Category = 97
	CatSense          Category = 98
	CatOther          Category = 99
)

var categoryNames = map[Category]string{
	CatClean:          "No errors",
	CatSyntax:         "Syntax error",
	CatNotReady:       "Device not ready",
	CatMediumHard:     "Medium or hardware error (plus blank check)",
	CatIllegalRequest: "Illegal request",
	CatUnitAttention:  "Unit attention",
	CatDataProtect:    "Data protect",
	CatInvalidOp:      "Invalid opcode (not supported)",
	CatCopyAborted:    "Copy aborted",
	CatAbortedCommand: "Aborted command",
	CatMiscompare:     "Miscompare",
	CatFileError:      "File error",
	CatNoSense:        "Sense data with key of 'no sense'",
	CatRecovered:      "Recovered error (warning)",
	CatMalformed:      "Malformed response",
	CatSense:          "Sense data, unclassified",
	CatOther:          "Some other error/warning",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Unknown category (%d)", int(c))
}

// Successful reports whether the category represents a usable command
// completion. Recovered errors and empty sense are counted as success, as
// the sg3_utils tools treat them.
func (c Category) Successful() bool {
	switch c {
	case CatClean, CatRecovered, CatNoSense:
		return true
	}
	return false
}

// ExitStatus converts a category to a process exit status. Categories that
// count as success map to 0.
func (c Category) ExitStatus() int {
	if c.Successful() {
		return 0
	}
	return int(c)
}

// CategorizeSense classifies normalized sense data by its sense key, with an
// Illegal Request of ASC 0x20 (invalid command operation code) promoted to
// its own category.
func CategorizeSense(s SenseData) Category {
	switch s.SenseKey {
	case SK_NO_SENSE:
		return CatNoSense
	case SK_RECOVERED_ERROR:
		return CatRecovered
	case SK_NOT_READY:
		return CatNotReady
	case SK_MEDIUM_ERROR, SK_HARDWARE_ERROR, SK_BLANK_CHECK:
		return CatMediumHard
	case SK_ILLEGAL_REQUEST:
		if s.Asc == 0x20 && s.Ascq == 0x00 {
			return CatInvalidOp
		}
		return CatIllegalRequest
	case SK_UNIT_ATTENTION:
		return CatUnitAttention
	case SK_DATA_PROTECT:
		return CatDataProtect
	case SK_COPY_ABORTED:
		return CatCopyAborted
	case SK_ABORTED_COMMAND:
		return CatAbortedCommand
	case SK_MISCOMPARE:
		return CatMiscompare
	}
	return CatSense
}

// Categorize classifies the completion state of a single SG_IO command,
// equivalent to sg_err_category3() in sg3_utils.
func Categorize(res IoResult) Category {
	if res.ScsiStatus == STATUS_CHECK_CONDITION || res.ScsiStatus == STATUS_TASK_ABORTED ||
		res.DriverStatus&DRIVER_SENSE != 0 {
		if s, ok := ParseSense(res.Sense); ok {
			return CategorizeSense(s)
		}
	}

	if res.ScsiStatus != STATUS_GOOD || res.HostStatus != 0 || res.DriverStatus != 0 {
		return CatOther
	}

	return CatClean
}

// CommandError is returned by command wrappers when a command did not
// complete cleanly. It preserves the outcome category, decoded sense data
// (if the device returned any) and the raw transport result.
type CommandError struct {
	Op       string
	Category Category
	Sense    SenseData
	HasSense bool
	Result   IoResult
}

func (e *CommandError) Error() string {
	if e.HasSense {
		return fmt.Sprintf("%s: %s (sense key: %s, asc=%#02x, ascq=%#02x)",
			e.Op, e.Category, SenseKeyName(e.Sense.SenseKey), e.Sense.Asc, e.Sense.Ascq)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Category, SgioError{
		ScsiStatus:   e.Result.ScsiStatus,
		HostStatus:   e.Result.HostStatus,
		DriverStatus: e.Result.DriverStatus,
	}.Error())
}

// CheckResult converts a command completion into an error unless its
// category counts as success.
func CheckResult(op string, res IoResult) error {
	cat := Categorize(res)
	if cat.Successful() {
		return nil
	}

	cmdErr := &CommandError{Op: op, Category: cat, Result: res}
	if s, ok := ParseSense(res.Sense); ok {
		cmdErr.Sense = s
		cmdErr.HasSense = true
	}

	return cmdErr
}

// ErrorExitStatus maps any error from this package to a process exit status:
// CommandError carries its category, anything else is a file/OS error.
func ErrorExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Category.ExitStatus()
	}
	return int(CatFileError)
}
