// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_requests issues one or more SCSI REQUEST SENSE commands and decodes the
// parameter data, which is itself a sense buffer describing the current (or
// most recent) condition of the device.

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cvubrugier/sg3-utils/scsi"
	"github.com/cvubrugier/sg3-utils/sensedb"
	"github.com/cvubrugier/sg3-utils/utils"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sg_requests [-desc] [-hex] [-maxlen=LEN] [-num=NUM] [-progress]")
	fmt.Fprintln(os.Stderr, "                   [-raw] [-status] [-timeout=SE] [-verbose] DEVICE")
}

func main() {
	desc := flag.Bool("desc", false, "Set flag for descriptor sense format")
	doHex := flag.Bool("hex", false, "Output parameter data in hexadecimal")
	maxlen := flag.Int("maxlen", scsi.DEF_REQ_SENSE_LEN, "Max response length (allocation length in cdb)")
	num := flag.Int("num", 1, "Number of REQUEST SENSE commands to send")
	progress := flag.Bool("progress", false, "Output a progress indication (percentage) if available")
	raw := flag.Bool("raw", false, "Output parameter data in binary (to stdout)")
	status := flag.Bool("status", false, "Set exit status from parameter data")
	timeout := flag.Int("timeout", 60, "Timeout in seconds per command")
	verbose := flag.Bool("verbose", false, "Increase verbosity")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	if *maxlen < 8 || *maxlen > 255 {
		fmt.Fprintln(os.Stderr, "argument to '-maxlen' should be between 8 and 255")
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

	db := sensedb.NewSenseDb()

	var lastData []byte

	for k := 0; k < *num; k++ {
		if *progress && k > 0 {
			time.Sleep(30 * time.Second)
		}

		data, res, err := dev.RequestSense(*desc, uint8(*maxlen))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Request Sense failed:", err)
			os.Exit(scsi.ErrorExitStatus(err))
		}
		lastData = data

		if *verbose {
			fmt.Fprintf(os.Stderr, "Request Sense returned %d bytes (resid=%d, duration=%d ms)\n",
				len(data), res.Resid, res.Duration)
		}

		if *progress {
			pr, ok := scsi.ProgressIndication(data)
			if !ok {
				// Exits first time there is no progress indication
				if *verbose {
					fmt.Fprintf(os.Stderr, "No progress indication found, iteration %d\n", k+1)
				}
				break
			}
			fmt.Printf("Progress indication: %d.%02d%% done\n", (pr*100)/65536, ((pr*100)%65536)/656)
			continue
		}

		switch {
		case *raw:
			os.Stdout.Write(data)
		case *doHex:
			fmt.Print(hex.Dump(data))
		default:
			s, ok := scsi.ParseSense(data)
			if !ok {
				fmt.Printf("Parameter data does not look like sense data (%d bytes)\n", len(data))
				break
			}
			fmt.Println("Parameter data decoded as sense:")
			fmt.Println(s)
			fmt.Printf(" %s\n", db.Describe(s.Asc, s.Ascq))
		}
	}

	if *status {
		s, ok := scsi.ParseSense(lastData)
		if !ok {
			os.Exit(int(scsi.CatMalformed))
		}
		cat := scsi.CategorizeSense(s)
		if cat == scsi.CatNoSense && s.Asc == 0 && s.Ascq == 0 {
			os.Exit(0)
		}
		os.Exit(cat.ExitStatus())
	}
}
