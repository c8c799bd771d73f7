// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package sensedb

// Built-in ASC / ASCQ assignments, from the SPC additional sense codes
// table. Only the codes plausibly returned by direct access and multimedia
// devices are carried; anything else falls back to the numeric form.
var defaultCodes = []SenseCode{
	{0x00, 0x00, "No additional sense information"},
	{0x00, 0x01, "Filemark detected"},
	{0x00, 0x02, "End-of-partition/medium detected"},
	{0x00, 0x05, "End-of-data detected"},
	{0x00, 0x06, "I/O process terminated"},
	{0x00, 0x16, "Operation in progress"},
	{0x00, 0x17, "Cleaning requested"},
	{0x00, 0x1d, "ATA pass through information available"},
	{0x01, 0x00, "No index/sector signal"},
	{0x02, 0x00, "No seek complete"},
	{0x03, 0x00, "Peripheral device write fault"},
	{0x04, 0x00, "Logical unit not ready, cause not reportable"},
	{0x04, 0x01, "Logical unit is in process of becoming ready"},
	{0x04, 0x02, "Logical unit not ready, initializing command required"},
	{0x04, 0x03, "Logical unit not ready, manual intervention required"},
	{0x04, 0x04, "Logical unit not ready, format in progress"},
	{0x04, 0x09, "Logical unit not ready, self-test in progress"},
	{0x04, 0x11, "Logical unit not ready, notify (enable spinup) required"},
	{0x04, 0x1c, "Logical unit not ready, additional power use not yet granted"},
	{0x05, 0x00, "Logical unit does not respond to selection"},
	{0x06, 0x00, "No reference position found"},
	{0x07, 0x00, "Multiple peripheral devices selected"},
	{0x08, 0x00, "Logical unit communication failure"},
	{0x08, 0x01, "Logical unit communication time-out"},
	{0x09, 0x00, "Track following error"},
	{0x0a, 0x00, "Error log overflow"},
	{0x0b, 0x00, "Warning"},
	{0x0b, 0x01, "Warning - specified temperature exceeded"},
	{0x0b, 0x02, "Warning - enclosure degraded"},
	{0x0c, 0x00, "Write error"},
	{0x0c, 0x02, "Write error - auto reallocation failed"},
	{0x0e, 0x00, "Invalid information unit"},
	{0x10, 0x00, "Id CRC or ECC error"},
	{0x11, 0x00, "Unrecovered read error"},
	{0x11, 0x01, "Read retries exhausted"},
	{0x11, 0x02, "Error too long to correct"},
	{0x11, 0x04, "Unrecovered read error - auto reallocate failed"},
	{0x12, 0x00, "Address mark not found for id field"},
	{0x13, 0x00, "Address mark not found for data field"},
	{0x14, 0x00, "Recorded entity not found"},
	{0x14, 0x01, "Record not found"},
	{0x15, 0x00, "Random positioning error"},
	{0x15, 0x01, "Mechanical positioning error"},
	{0x16, 0x00, "Data synchronization mark error"},
	{0x17, 0x00, "Recovered data with no error correction applied"},
	{0x17, 0x01, "Recovered data with retries"},
	{0x18, 0x00, "Recovered data with error correction applied"},
	{0x19, 0x00, "Defect list error"},
	{0x1a, 0x00, "Parameter list length error"},
	{0x1b, 0x00, "Synchronous data transfer error"},
	{0x1c, 0x00, "Defect list not found"},
	{0x1d, 0x00, "Miscompare during verify operation"},
	{0x20, 0x00, "Invalid command operation code"},
	{0x21, 0x00, "Logical block address out of range"},
	{0x21, 0x01, "Invalid element address"},
	{0x22, 0x00, "Illegal function (use 20 00, 24 00, or 26 00)"},
	{0x24, 0x00, "Invalid field in cdb"},
	{0x25, 0x00, "Logical unit not supported"},
	{0x26, 0x00, "Invalid field in parameter list"},
	{0x26, 0x01, "Parameter not supported"},
	{0x26, 0x02, "Parameter value invalid"},
	{0x27, 0x00, "Write protected"},
	{0x27, 0x01, "Hardware write protected"},
	{0x27, 0x02, "Logical unit software write protected"},
	{0x28, 0x00, "Not ready to ready change, medium may have changed"},
	{0x28, 0x01, "Import or export element accessed"},
	{0x29, 0x00, "Power on, reset, or bus device reset occurred"},
	{0x29, 0x01, "Power on occurred"},
	{0x29, 0x02, "SCSI bus reset occurred"},
	{0x29, 0x03, "Bus device reset function occurred"},
	{0x29, 0x04, "Device internal reset"},
	{0x2a, 0x00, "Parameters changed"},
	{0x2a, 0x01, "Mode parameters changed"},
	{0x2a, 0x02, "Log parameters changed"},
	{0x2a, 0x09, "Capacity data has changed"},
	{0x2c, 0x00, "Command sequence error"},
	{0x2e, 0x00, "Insufficient time for operation"},
	{0x2f, 0x00, "Commands cleared by another initiator"},
	{0x30, 0x00, "Incompatible medium installed"},
	{0x30, 0x01, "Cannot read medium - unknown format"},
	{0x31, 0x00, "Medium format corrupted"},
	{0x31, 0x01, "Format command failed"},
	{0x32, 0x00, "No defect spare location available"},
	{0x37, 0x00, "Rounded parameter"},
	{0x39, 0x00, "Saving parameters not supported"},
	{0x3a, 0x00, "Medium not present"},
	{0x3a, 0x01, "Medium not present - tray closed"},
	{0x3a, 0x02, "Medium not present - tray open"},
	{0x3b, 0x0d, "Medium destination element full"},
	{0x3b, 0x0e, "Medium source element empty"},
	{0x3d, 0x00, "Invalid bits in identify message"},
	{0x3e, 0x00, "Logical unit has not self-configured yet"},
	{0x3e, 0x01, "Logical unit failure"},
	{0x3e, 0x02, "Timeout on logical unit"},
	{0x3f, 0x00, "Target operating conditions have changed"},
	{0x3f, 0x01, "Microcode has been changed"},
	{0x3f, 0x02, "Changed operating definition"},
	{0x3f, 0x03, "Inquiry data has changed"},
	{0x3f, 0x0e, "Reported luns data has changed"},
	{0x40, 0x00, "Ram failure (should use 40 nn)"},
	{0x41, 0x00, "Data path failure (should use 40 nn)"},
	{0x42, 0x00, "Power-on or self-test failure (should use 40 nn)"},
	{0x43, 0x00, "Message error"},
	{0x44, 0x00, "Internal target failure"},
	{0x45, 0x00, "Select or reselect failure"},
	{0x46, 0x00, "Unsuccessful soft reset"},
	{0x47, 0x00, "SCSI parity error"},
	{0x48, 0x00, "Initiator detected error message received"},
	{0x49, 0x00, "Invalid message error"},
	{0x4a, 0x00, "Command phase error"},
	{0x4b, 0x00, "Data phase error"},
	{0x4c, 0x00, "Logical unit failed self-configuration"},
	{0x4e, 0x00, "Overlapped commands attempted"},
	{0x53, 0x00, "Media load or eject failed"},
	{0x53, 0x02, "Medium removal prevented"},
	{0x55, 0x00, "System resource failure"},
	{0x55, 0x01, "System buffer full"},
	{0x5a, 0x00, "Operator request or state change input"},
	{0x5a, 0x01, "Operator medium removal request"},
	{0x5d, 0x00, "Failure prediction threshold exceeded"},
	{0x5e, 0x00, "Low power condition on"},
	{0x65, 0x00, "Voltage fault"},
}
