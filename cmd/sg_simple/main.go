// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_simple executes a SCSI INQUIRY command and a TEST UNIT READY command
// using the SCSI generic (sg) driver.
//
// Invocation: sg_simple [-x] <sg_device>

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cvubrugier/sg3-utils/scsi"
	"github.com/cvubrugier/sg3-utils/utils"
)

func main() {
	extra := flag.Bool("x", false, "Print extra information (duration, resid, msg_status) per command")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sg_simple [-x] <sg_device>")
		os.Exit(1)
	}

	utils.CheckCaps()

	dev, err := scsi.OpenDevice(flag.Arg(0), true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer dev.Close()

	// Just to be safe, check we have a new sg device by trying an ioctl
	if err := dev.CheckSgVersion(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	inq, buf, err := dev.Inquiry(96)
	switch {
	case err == nil:
		fmt.Println("Some of the INQUIRY command's results:")
		f := buf[7]
		fmt.Printf("    %.8s  %.16s  %.4s  [wide=%t sync=%t cmdque=%t sftre=%t]\n",
			inq.VendorIdent, inq.ProductIdent, inq.ProductRev,
			f&0x20 != 0, f&0x10 != 0, f&0x02 != 0, f&0x01 != 0)
	default:
		fmt.Fprintln(os.Stderr, "INQUIRY command error:", err)
	}

	turRes, err := dev.TestUnitReady()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Test Unit Ready SG_IO ioctl error:", err)
		os.Exit(1)
	}

	switch cat := scsi.Categorize(turRes); {
	case cat == scsi.CatClean:
		fmt.Println("Test Unit Ready successful so unit is ready!")
	case cat == scsi.CatRecovered:
		fmt.Println("Recovered error on Test Unit Ready, continuing")
		fmt.Println("Test Unit Ready successful so unit is ready!")
	default:
		if s, ok := scsi.ParseSense(turRes.Sense); ok {
			fmt.Println("Test Unit Ready command error:")
			fmt.Println(s)
		}
		fmt.Println("Test Unit Ready failed so unit may _not_ be ready!")
	}

	if *extra {
		fmt.Printf("TEST UNIT READY duration=%d millisecs, resid=%d, msg_status=%d\n",
			turRes.Duration, turRes.Resid, turRes.MsgStatus)
	}
}
