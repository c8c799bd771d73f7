// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// sg_decode_sense decodes SCSI sense data given on the command line as a
// sequence of hexadecimal bytes (H1 H2 H3 ...). Alternatively the sense data
// can be in a binary file or in a file containing ASCII hexadecimal. If
// '-cdb' is given, the hex is interpreted as a SCSI CDB rather than sense
// data.

package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cvubrugier/sg3-utils/scsi"
	"github.com/cvubrugier/sg3-utils/sensedb"
)

// Max descriptor format sense is actually 255+8; allow room for arbitrary hex
const maxSenseLen = 8192

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sg_decode_sense [-binary=BFN] [-cdb] [-file=HFN] [-hex] [-json]")
	fmt.Fprintln(os.Stderr, "                       [-nospace] [-sensedb=FN] [-status=SS] [-verbose]")
	fmt.Fprintln(os.Stderr, "                       [-write=WFN] H1 H2 H3 ...")
}

func main() {
	binFile := flag.String("binary", "", "File name to read sense data in binary from ('-' for stdin)")
	doCDB := flag.Bool("cdb", false, "Decode given hex as cdb rather than sense data")
	hexFile := flag.String("file", "", "File name from which to read sense data in ASCII hexadecimal ('-' for stdin)")
	doHex := flag.Bool("hex", false, "Do not decode, output incoming data in hex")
	doJSON := flag.Bool("json", false, "Output decoded sense in JSON instead of plain text")
	noSpace := flag.Bool("nospace", false, "No spaces between pairs of hex digits (e.g. '3132330A')")
	dbFile := flag.String("sensedb", "", "YAML file with additional sense code descriptions to overlay")
	status := flag.String("status", "", "SCSI status value in hex")
	verbose := flag.Bool("verbose", false, "Increase verbosity")
	wfname := flag.String("write", "", "Write sense data in binary to file, truncating first")
	flag.Parse()

	if *status != "" {
		ss, err := strconv.ParseUint(strings.TrimPrefix(*status, "0x"), 16, 8)
		if err != nil {
			fmt.Fprintln(os.Stderr, "'-status=SS' expects a byte value in hex")
			os.Exit(1)
		}
		fmt.Printf("SCSI status: %s\n", scsi.StatusName(uint8(ss)))
	}

	sense, err := gatherBytes(*binFile, *hexFile, *noSpace, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(sense) == 0 {
		if *status != "" {
			return
		}
		fmt.Fprintln(os.Stderr, ">> Need sense/cdb data on the command line or in a file")
		fmt.Fprintln(os.Stderr)
		usage()
		os.Exit(1)
	}

	if *wfname != "" {
		if err := os.WriteFile(*wfname, sense, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "unable to write file:", err)
			os.Exit(int(scsi.CatFileError))
		}
		return
	}

	switch {
	case *doHex:
		fmt.Print(hex.Dump(sense))
	case *doCDB:
		fmt.Println(scsi.CommandName(sense))
	default:
		s, ok := scsi.ParseSense(sense)
		if !ok {
			fmt.Fprintf(os.Stderr, "unable to decode %d bytes as sense data\n", len(sense))
			os.Exit(int(scsi.CatMalformed))
		}

		db, err := sensedb.OpenSenseDb(*dbFile)
		if err != nil && *verbose {
			fmt.Fprintln(os.Stderr, "sensedb overlay error:", err)
		}

		if *doJSON {
			out, _ := json.MarshalIndent(s, "", "  ")
			fmt.Println(string(out))
			return
		}

		fmt.Println(s)
		fmt.Printf(" %s\n", db.Describe(s.Asc, s.Ascq))
	}
}

// gatherBytes collects the input bytes from a binary file, an ASCII hex file,
// or the command line arguments (hex byte per argument, or concatenated hex
// digit pairs with -nospace). Exactly one source may be used.
func gatherBytes(binFile, hexFile string, noSpace bool, args []string) ([]byte, error) {
	sources := 0
	for _, given := range []bool{binFile != "", hexFile != "", len(args) > 0} {
		if given {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("need sense data on the command line or in a file, not both")
	}

	switch {
	case binFile != "":
		r := io.Reader(os.Stdin)
		if binFile != "-" {
			f, err := os.Open(binFile)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		return io.ReadAll(io.LimitReader(r, maxSenseLen))
	case hexFile != "":
		r := io.Reader(os.Stdin)
		if hexFile != "-" {
			f, err := os.Open(hexFile)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		return parseHexStream(r)
	case noSpace:
		s := strings.Join(args, "")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("bad nospace hex string: %v", err)
		}
		return b, nil
	default:
		b := make([]byte, 0, len(args))
		for _, arg := range args {
			val, err := strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid byte %q", arg)
			}
			b = append(b, byte(val))
		}
		return b, nil
	}
}

// parseHexStream reads whitespace and comma separated ASCII hex byte values,
// one or more per line. Anything after a '#' is a comment.
func parseHexStream(r io.Reader) ([]byte, error) {
	var out []byte

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.ReplaceAll(line, ",", " ")
		for _, tok := range strings.Fields(line) {
			val, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid byte %q", tok)
			}
			out = append(out, byte(val))
			if len(out) > maxSenseLen {
				return nil, fmt.Errorf("sense data too long (max. %d bytes)", maxSenseLen)
			}
		}
	}

	return out, scanner.Err()
}
