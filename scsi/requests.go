// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI REQUEST SENSE command.

package scsi

// RequestSense issues a REQUEST SENSE command, asking for descriptor format
// sense data when desc is set, and returns the parameter data trimmed to the
// actual transfer length. The parameter data is itself a sense buffer and
// can be handed to ParseSense.
func (d *Device) RequestSense(desc bool, allocLen uint8) ([]byte, IoResult, error) {
	cdb := CDB6{SCSI_REQUEST_SENSE, 0, 0, 0, allocLen, 0}
	if desc {
		cdb[1] |= 0x01
	}

	buf := make([]byte, allocLen)

	res, err := d.Exec(cdb[:], SG_DXFER_FROM_DEV, buf)
	if err != nil {
		return nil, res, err
	}
	if err := CheckResult("REQUEST SENSE", res); err != nil {
		return nil, res, err
	}

	n := len(buf) - int(res.Resid)
	if n < 0 {
		n = 0
	}

	return buf[:n], res, nil
}
