// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_turs performs one or more SCSI TEST UNIT READY commands, optionally
// reporting a progress indication from the returned sense data, or timing
// the command rate.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cvubrugier/sg3-utils/scsi"
	"github.com/cvubrugier/sg3-utils/utils"
)

func main() {
	num := flag.Int("num", 1, "Number of TEST UNIT READY commands to send")
	progress := flag.Bool("progress", false, "Report progress indication from sense data, if available")
	doTime := flag.Bool("time", false, "Time the commands and report commands per second")
	timeout := flag.Int("timeout", 20, "Timeout in seconds per command")
	verbose := flag.Bool("verbose", false, "Increase verbosity")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sg_turs [-num=NUM] [-progress] [-time] [-timeout=SE] [-verbose] DEVICE")
		os.Exit(1)
	}

	utils.CheckCaps()

	dev, err := scsi.OpenDevice(flag.Arg(0), true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(scsi.CatFileError))
	}
	defer dev.Close()
	dev.Timeout = uint32(*timeout) * 1000

	var (
		numErrs int
		lastCat scsi.Category
		start   = time.Now()
	)

	for k := 0; k < *num; k++ {
		res, err := dev.TestUnitReady()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Test Unit Ready SG_IO ioctl error:", err)
			os.Exit(int(scsi.CatFileError))
		}

		lastCat = scsi.Categorize(res)
		if lastCat.Successful() {
			continue
		}

		numErrs++
		if *progress {
			if pr, ok := scsi.ProgressIndication(res.Sense); ok {
				fmt.Printf("Progress indication: %d.%02d%% done\n",
					(pr*100)/65536, ((pr*100)%65536)/656)
				continue
			}
		}

		if *verbose || *num == 1 {
			if s, ok := scsi.ParseSense(res.Sense); ok {
				fmt.Println(s)
			} else {
				fmt.Println(lastCat)
			}
		}
	}

	if *doTime {
		elapsed := time.Since(start).Seconds()
		fmt.Printf("time to perform commands was %.6f secs", elapsed)
		if elapsed > 0.00001 {
			fmt.Printf("; %.2f operations/sec\n", float64(*num)/elapsed)
		} else {
			fmt.Println()
		}
	}

	if *num == 1 {
		if numErrs == 0 {
			fmt.Println("Ready")
		} else {
			fmt.Println("Device not ready")
		}
	} else if numErrs > 0 {
		fmt.Printf("Completed %d Test Unit Ready commands with %d errors\n", *num, numErrs)
	}

	os.Exit(lastCat.ExitStatus())
}
