// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Additional sense code (ASC / ASCQ) description database. A built-in table
// covers the common SPC assignments; site-specific or vendor codes can be
// overlaid from a YAML file.

package sensedb

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SenseCode is one ASC / ASCQ assignment.
type SenseCode struct {
	Asc         uint8
	Ascq        uint8
	Description string
}

type SenseDb struct {
	codes map[uint16]string
}

func key(asc, ascq uint8) uint16 {
	return uint16(asc)<<8 | uint16(ascq)
}

// NewSenseDb returns a database holding only the built-in assignments.
func NewSenseDb() SenseDb {
	db := SenseDb{codes: make(map[uint16]string, len(defaultCodes))}
	for _, sc := range defaultCodes {
		db.codes[key(sc.Asc, sc.Ascq)] = sc.Description
	}
	return db
}

// OpenSenseDb returns the built-in database, overlaid with the assignments
// from a YAML file. A missing file is not an error; the built-in table is
// used as-is, matching how the drive database behaves.
func OpenSenseDb(dbfile string) (SenseDb, error) {
	db := NewSenseDb()

	f, err := os.Open(dbfile)
	if err != nil {
		return db, nil
	}

	defer f.Close()
	dec := yaml.NewDecoder(f)

	var overlay struct {
		Codes []SenseCode
	}
	if err := dec.Decode(&overlay); err != nil {
		return db, err
	}

	for _, sc := range overlay.Codes {
		db.codes[key(sc.Asc, sc.Ascq)] = sc.Description
	}

	return db, nil
}

// Describe returns the description of an ASC / ASCQ pair, handling the
// ranged assignments (diagnostic failure, tagged overlapped commands) and
// vendor specific regions that a plain table lookup cannot express.
func (db SenseDb) Describe(asc, ascq uint8) string {
	if desc, ok := db.codes[key(asc, ascq)]; ok {
		return desc
	}

	switch {
	case asc == 0x40 && ascq >= 0x80:
		return fmt.Sprintf("Diagnostic failure on component %#02x", ascq)
	case asc == 0x4d:
		return fmt.Sprintf("Tagged overlapped commands (task tag %#02x)", ascq)
	case asc == 0x70:
		return fmt.Sprintf("Decompression exception short algorithm id of %#02x", ascq)
	case asc >= 0x80 || ascq >= 0x80:
		return fmt.Sprintf("vendor specific: asc=%#02x, ascq=%#02x", asc, ascq)
	}

	return fmt.Sprintf("asc=%#02x, ascq=%#02x", asc, ascq)
}
