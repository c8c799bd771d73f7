// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI TEST UNIT READY command.

package scsi

// TestUnitReady issues a TEST UNIT READY command and returns the raw
// completion state. A clean completion means the unit is ready; a CHECK
// CONDITION carries sense data describing why it is not.
func (d *Device) TestUnitReady() (IoResult, error) {
	cdb := CDB6{SCSI_TEST_UNIT_READY, 0, 0, 0, 0, 0}

	return d.Exec(cdb[:], SG_DXFER_NONE, nil)
}

// Ready issues a TEST UNIT READY command and reduces the outcome to a
// yes/no answer, with the classification error for a negative answer.
func (d *Device) Ready() (bool, error) {
	res, err := d.TestUnitReady()
	if err != nil {
		return false, err
	}

	if err := CheckResult("TEST UNIT READY", res); err != nil {
		return false, err
	}

	return true, nil
}
