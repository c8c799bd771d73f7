// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_scan walks the usual device nodes, issues an INQUIRY to each SCSI
// device, and prints a one line summary per device. NVMe controller nodes
// are recognized as well and identified through the NVMe admin interface.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/dswarbrick/go-nvme/nvme"

	"github.com/cvubrugier/sg3-utils/scsi"
	"github.com/cvubrugier/sg3-utils/utils"
)

var nvmeCtrlRe = regexp.MustCompile(`^/dev/nvme[0-9]+$`)

func scanSCSI(pattern string) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return
	}

	for _, file := range files {
		dev, err := scsi.OpenDevice(file, true)
		if err != nil {
			fmt.Printf("%s: %v\n", file, err)
			continue
		}

		if inq, _, err := dev.Inquiry(scsi.INQ_REPLY_LEN); err != nil {
			fmt.Printf("%s: %v\n", file, err)
		} else {
			fmt.Printf("%s: %s\n", file, inq)
		}

		dev.Close()
	}
}

func scanNVMe() {
	files, err := filepath.Glob("/dev/nvme*")
	if err != nil {
		return
	}

	for _, file := range files {
		if !nvmeCtrlRe.MatchString(file) {
			continue
		}

		d := nvme.NewNVMeDevice(file)
		if err := d.Open(); err != nil {
			fmt.Printf("%s: %v\n", file, err)
			continue
		}

		if ctrlr, err := d.IdentifyController(io.Discard); err != nil {
			fmt.Printf("%s: %v\n", file, err)
		} else {
			fmt.Printf("%s: %s  %s  [NVMe, firmware %s]\n",
				file, ctrlr.ModelNumber, ctrlr.SerialNumber, ctrlr.FirmwareVersion)
		}

		d.Close()
	}
}

func main() {
	fmt.Printf("Built with %s on %s (%s)\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	noNVMe := flag.Bool("no-nvme", false, "Skip NVMe controller nodes")
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Usage: sg_scan [-no-nvme]")
		os.Exit(1)
	}

	utils.CheckCaps()

	// sg char devices, then whole-disk block devices
	scanSCSI("/dev/sg*")
	scanSCSI("/dev/sd*[^0-9]")

	if !*noNVMe {
		scanNVMe()
	}
}
