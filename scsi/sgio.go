// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// SCSI generic IO functions.

package scsi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	SG_GET_VERSION_NUM = 0x2282
	SG_IO              = 0x2285

	SG_DXFER_NONE        = -1
	SG_DXFER_TO_DEV      = -2
	SG_DXFER_FROM_DEV    = -3
	SG_DXFER_TO_FROM_DEV = -4

	SG_INFO_OK_MASK = 0x1
	SG_INFO_OK      = 0x0

	// Driver status SENSE bit - sense buffer was written by the driver
	DRIVER_SENSE = 0x08

	// Timeout in milliseconds
	DEFAULT_TIMEOUT = 20000

	// Max autosense length requested per command
	SENSE_BUF_LEN = 32
)

// SCSI generic ioctl header, defined as sg_io_hdr_t in <scsi/sg.h>
type sgIoHdr struct {
	interface_id    int32   // 'S' for SCSI generic (required)
	dxfer_direction int32   // data transfer direction
	cmd_len         uint8   // SCSI command length (<= 16 bytes)
	mx_sb_len       uint8   // max length to write to sbp
	iovec_count     uint16  // 0 implies no scatter gather
	dxfer_len       uint32  // byte count of data transfer
	dxferp          uintptr // points to data transfer memory or scatter gather list
	cmdp            uintptr // points to command to perform
	sbp             uintptr // points to sense_buffer memory
	timeout         uint32  // MAX_UINT -> no timeout (unit: millisec)
	flags           uint32  // 0 -> default, see SG_FLAG...
	pack_id         int32   // unused internally (normally)
	usr_ptr         uintptr // unused internally
	status          uint8   // SCSI status
	masked_status   uint8   // shifted, masked scsi status
	msg_status      uint8   // messaging level data (optional)
	sb_len_wr       uint8   // byte count actually written to sbp
	host_status     uint16  // errors from host adapter
	driver_status   uint16  // errors from software driver
	resid           int32   // dxfer_len - actual_transferred
	duration        uint32  // time taken by cmd (unit: millisec)
	info            uint32  // auxiliary information
}

// IoResult holds the completion state of a single SG_IO command: the three
// status bytes, the autosense data written by the device (if any), and the
// auxiliary transfer information reported by the sg driver.
type IoResult struct {
	ScsiStatus   uint8
	HostStatus   uint16
	DriverStatus uint16
	MsgStatus    uint8
	Sense        []byte
	Resid        int32
	Duration     uint32
	Info         uint32
}

// Ok reports whether the sg driver considered the command clean, i.e., no
// SCSI, host or driver status was raised.
func (r IoResult) Ok() bool {
	return r.Info&SG_INFO_OK_MASK == SG_INFO_OK
}

type SgioError struct {
	ScsiStatus   uint8
	HostStatus   uint16
	DriverStatus uint16
}

func (e SgioError) Error() string {
	return fmt.Sprintf("SCSI status: %#02x, host status: %#02x, driver status: %#02x",
		e.ScsiStatus, e.HostStatus, e.DriverStatus)
}

// Device is an open SCSI generic device node.
type Device struct {
	Name    string
	Timeout uint32 // per-command timeout in milliseconds
	fd      int
}

// OpenDevice opens a device node for SG_IO access. With readonly set, the
// node is opened O_RDONLY, which the sg driver accepts for non-write
// commands.
func OpenDevice(name string, readonly bool) (*Device, error) {
	flags := unix.O_RDWR
	if readonly {
		flags = unix.O_RDONLY
	}

	fd, err := unix.Open(name, flags|unix.O_NONBLOCK, 0600)
	if err != nil {
		return nil, fmt.Errorf("cannot open device %s: %v", name, err)
	}

	return &Device{Name: name, Timeout: DEFAULT_TIMEOUT, fd: fd}, nil
}

func (d *Device) Close() error {
	return unix.Close(d.fd)
}

// CheckSgVersion probes the device with SG_GET_VERSION_NUM to verify that it
// really is a (sufficiently recent) sg device. Block device nodes such as
// /dev/sda also accept SG_IO but reject this ioctl, so a failure is only
// fatal when the version is reported and too old.
func (d *Device) CheckSgVersion() error {
	var version uint32

	if err := ioctl(uintptr(d.fd), SG_GET_VERSION_NUM, uintptr(unsafe.Pointer(&version))); err != nil {
		return fmt.Errorf("%s does not appear to be an sg device: %v", d.Name, err)
	}

	if version < 30000 {
		return fmt.Errorf("%s is an sg device, but driver version %d is too old", d.Name, version)
	}

	return nil
}

// Exec submits a single CDB through the SG_IO ioctl, transferring data in the
// given direction through buf (which may be nil for SG_DXFER_NONE). The
// returned IoResult is valid whenever err is nil, including for commands that
// completed with CHECK CONDITION.
func (d *Device) Exec(cdb []byte, dir int32, buf []byte) (IoResult, error) {
	senseBuf := make([]byte, SENSE_BUF_LEN)

	hdr := sgIoHdr{
		interface_id:    'S',
		dxfer_direction: dir,
		cmd_len:         uint8(len(cdb)),
		mx_sb_len:       uint8(len(senseBuf)),
		cmdp:            uintptr(unsafe.Pointer(&cdb[0])),
		sbp:             uintptr(unsafe.Pointer(&senseBuf[0])),
		timeout:         d.Timeout,
	}

	if len(buf) > 0 {
		hdr.dxfer_len = uint32(len(buf))
		hdr.dxferp = uintptr(unsafe.Pointer(&buf[0]))
	}

	if err := ioctl(uintptr(d.fd), SG_IO, uintptr(unsafe.Pointer(&hdr))); err != nil {
		return IoResult{}, err
	}

	res := IoResult{
		ScsiStatus:   hdr.status,
		HostStatus:   hdr.host_status,
		DriverStatus: hdr.driver_status,
		MsgStatus:    hdr.msg_status,
		Sense:        senseBuf[:hdr.sb_len_wr],
		Resid:        hdr.resid,
		Duration:     hdr.duration,
		Info:         hdr.info,
	}

	return res, nil
}
