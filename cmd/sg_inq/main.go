// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_inq issues a SCSI INQUIRY command and decodes the response, either the
// standard INQUIRY data or a VPD page.

package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cvubrugier/sg3-utils/scsi"
	"github.com/cvubrugier/sg3-utils/utils"
)

func main() {
	doHex := flag.Bool("hex", false, "Output response in hexadecimal")
	doJSON := flag.Bool("json", false, "Output in JSON instead of plain text")
	maxlen := flag.Uint("maxlen", 96, "Max response length (allocation length in cdb)")
	page := flag.Int("page", -1, "VPD page code to fetch (-1 for standard INQUIRY)")
	raw := flag.Bool("raw", false, "Output response in binary (to stdout)")
	serial := flag.Bool("serial", false, "Print the unit serial number (VPD page 0x80)")
	verbose := flag.Bool("verbose", false, "Increase verbosity")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sg_inq [-hex] [-json] [-maxlen=LEN] [-page=PG] [-raw] [-serial] [-verbose] DEVICE")
		os.Exit(1)
	}

	utils.CheckCaps()

	dev, err := scsi.OpenDevice(flag.Arg(0), true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(scsi.CatFileError))
	}
	defer dev.Close()

	if *serial {
		sn, err := dev.SerialNumber()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(scsi.ErrorExitStatus(err))
		}
		fmt.Println(sn)
		return
	}

	if *page >= 0 {
		body, err := dev.InquiryVPD(uint8(*page), uint16(*maxlen))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(scsi.ErrorExitStatus(err))
		}

		if *raw {
			os.Stdout.Write(body)
		} else {
			fmt.Printf("VPD page %#02x, %d bytes:\n", *page, len(body))
			fmt.Print(hex.Dump(body))
		}
		return
	}

	inq, buf, err := dev.Inquiry(uint16(*maxlen))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(scsi.ErrorExitStatus(err))
	}

	switch {
	case *raw:
		os.Stdout.Write(buf)
	case *doHex:
		fmt.Print(hex.Dump(buf))
	case *doJSON:
		out, _ := json.MarshalIndent(inq, "", "  ")
		fmt.Println(string(out))
	default:
		fmt.Println("Standard INQUIRY:")
		fmt.Printf("  Vendor identification: %s\n", inq.VendorIdent)
		fmt.Printf("  Product identification: %s\n", inq.ProductIdent)
		fmt.Printf("  Product revision level: %s\n", inq.ProductRev)
		fmt.Printf("  Peripheral device type: %s\n", inq.DevTypeName())
		if *verbose {
			fmt.Printf("  PQual=%d  RMB=%t  Version=%#02x\n", inq.PeripheralQualifier, inq.Removable, inq.Version)
			fmt.Printf("  WBus16=%t  Sync=%t  CmdQue=%t\n", inq.Wbus16, inq.Sync, inq.CmdQue)
		}
	}
}
