// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_readcap performs a SCSI READ CAPACITY (10 or 16) command on the given
// device and prints the decoded parameter data.

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

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sg_readcap [-16|-long] [-brief] [-hex] [-json] [-lba=LBA] [-pmi]")
	fmt.Fprintln(os.Stderr, "                  [-raw] [-readonly] [-verbose] [-zbc] DEVICE")
}

func main() {
	doLong := flag.Bool("16", false, "Use READ CAPACITY (16) cdb (def: use 10 byte cdb)")
	flag.BoolVar(doLong, "long", false, "Synonym for -16")
	brief := flag.Bool("brief", false, "Brief, two hex numbers: number of blocks and block size")
	doHex := flag.Bool("hex", false, "Output response in hexadecimal to stdout")
	doJSON := flag.Bool("json", false, "Output in JSON instead of plain text")
	lba := flag.Uint64("lba", 0, "Yields the last block prior to (head movement) delay after LBA (valid with -pmi)")
	pmi := flag.Bool("pmi", false, "Partial medium indicator (without this option shows total disk capacity)")
	raw := flag.Bool("raw", false, "Output response in binary to stdout")
	readonly := flag.Bool("readonly", false, "Open DEVICE read-only (def: RCAP(16) read-write)")
	verbose := flag.Bool("verbose", false, "Increase verbosity")
	zbc := flag.Bool("zbc", false, "Show rc_basis ZBC field (implies -16)")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	if !*pmi && *lba > 0 {
		fmt.Fprintln(os.Stderr, "lba can only be non-zero when '-pmi' is set")
		os.Exit(1)
	}
	if *zbc {
		*doLong = true
	}
	if *lba > 0xfffffffe {
		// Force READ CAPACITY (16) for large lbas
		*doLong = true
	}

	utils.CheckCaps()

	// RCAP(10) has opened RO in the past, so leave it that way
	rdonly := *readonly || !*doLong

	dev, err := scsi.OpenDevice(flag.Arg(0), rdonly)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(scsi.CatFileError))
	}
	defer dev.Close()

	if !*doLong {
		cap10, resp, err := dev.ReadCapacity10(*pmi, uint32(*lba))
		switch {
		case err == nil && !cap10.Overflow():
			print10(cap10, resp, *brief, *doHex, *doJSON, *raw, *pmi, *lba)
			return
		case err == nil:
			fmt.Println("READ CAPACITY (10) indicates device capacity too large")
			fmt.Println("  now trying 16 byte cdb variant")
			*doLong = true
		default:
			if cmdErr, ok := err.(*scsi.CommandError); ok && cmdErr.Category == scsi.CatInvalidOp {
				if *verbose {
					fmt.Fprintln(os.Stderr, "READ CAPACITY (10) not supported, trying READ CAPACITY (16)")
				}
				*doLong = true
			} else {
				fmt.Fprintln(os.Stderr, "READ CAPACITY (10) failed:", err)
				os.Exit(scsi.ErrorExitStatus(err))
			}
		}
	}

	cap16, resp, err := dev.ReadCapacity16(*pmi, *lba)
	if err != nil {
		fmt.Fprintln(os.Stderr, "READ CAPACITY (16) failed:", err)
		os.Exit(scsi.ErrorExitStatus(err))
	}

	print16(cap16, resp, *brief, *doHex, *doJSON, *raw, *pmi, *lba, *zbc)
}

func print10(cap10 scsi.Capacity10, resp []byte, brief, doHex, doJSON, raw, pmi bool, lba uint64) {
	switch {
	case raw:
		os.Stdout.Write(resp)
	case doHex:
		fmt.Print(hex.Dump(resp))
	case doJSON:
		out, _ := json.MarshalIndent(struct {
			Rcap scsi.Capacity10 `json:"read_capacity_10_parameter_data"`
		}{cap10}, "", "  ")
		fmt.Println(string(out))
	case brief:
		fmt.Printf("0x%x 0x%x\n", uint64(cap10.LastLBA)+1, cap10.BlockSize)
	default:
		fmt.Println("Read Capacity results:")
		if pmi {
			fmt.Printf("   PMI mode: given lba=0x%x, last lba before delay=0x%x\n", lba, cap10.LastLBA)
		} else {
			fmt.Printf("   Last LBA=%d (0x%x), Number of logical blocks=%d\n",
				cap10.LastLBA, cap10.LastLBA, uint64(cap10.LastLBA)+1)
		}
		fmt.Printf("   Logical block length=%d bytes\n", cap10.BlockSize)
		if !pmi {
			fmt.Println("Hence:")
			fmt.Printf("   Device size: %d bytes, %s\n", cap10.Bytes(), utils.FormatBytes(cap10.Bytes()))
		}
	}
}

func print16(cap16 scsi.Capacity16, resp []byte, brief, doHex, doJSON, raw, pmi bool, lba uint64, zbc bool) {
	switch {
	case raw:
		os.Stdout.Write(resp)
	case doHex:
		fmt.Print(hex.Dump(resp))
	case doJSON:
		out, _ := json.MarshalIndent(struct {
			Rcap scsi.Capacity16 `json:"read_capacity_16_parameter_data"`
		}{cap16}, "", "  ")
		fmt.Println(string(out))
	case brief:
		fmt.Printf("0x%x 0x%x\n", cap16.LastLBA+1, cap16.BlockSize)
	default:
		fmt.Println("Read Capacity results:")
		fmt.Printf("   Protection: prot_en=%t, p_type=%d, p_i_exponent=%d\n",
			cap16.ProtEnabled, cap16.ProtType, cap16.PiExponent)
		if zbc {
			fmt.Printf("   ZBC's rc_basis=%d [%s]\n", cap16.RcBasis, cap16.RcBasisString())
		}
		fmt.Printf("   Logical block provisioning: lbpme=%t, lbprz=%t\n", cap16.Lbpme, cap16.Lbprz)
		if pmi {
			fmt.Printf("   PMI mode: given lba=0x%x, last lba before delay=0x%x\n", lba, cap16.LastLBA)
		} else {
			fmt.Printf("   Last LBA=%d (0x%x), Number of logical blocks=%d\n",
				cap16.LastLBA, cap16.LastLBA, cap16.LastLBA+1)
		}
		fmt.Printf("   Logical block length=%d bytes\n", cap16.BlockSize)
		fmt.Printf("   Logical blocks per physical block exponent=%d", cap16.Lbppbe)
		if cap16.Lbppbe > 0 {
			fmt.Printf(" [so physical block length=%d bytes]\n", cap16.PhysBlockSize())
		} else {
			fmt.Println()
		}
		fmt.Printf("   Lowest aligned LBA=%d\n", cap16.LowestAligned)
		if !pmi {
			fmt.Println("Hence:")
			fmt.Printf("   Device size: %d bytes, %s\n", cap16.Bytes(), utils.FormatBytes(cap16.Bytes()))
		}
	}
}
