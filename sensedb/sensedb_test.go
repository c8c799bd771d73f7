// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package sensedb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	assert := assert.New(t)
	db := NewSenseDb()

	assert.Equal("No additional sense information", db.Describe(0x00, 0x00))
	assert.Equal("Invalid command operation code", db.Describe(0x20, 0x00))
	assert.Equal("Not ready to ready change, medium may have changed", db.Describe(0x28, 0x00))
	assert.Equal("Medium not present", db.Describe(0x3a, 0x00))
}

func TestDescribeRanged(t *testing.T) {
	assert := assert.New(t)
	db := NewSenseDb()

	assert.Equal("Diagnostic failure on component 0x9c", db.Describe(0x40, 0x9c))
	assert.Equal("Tagged overlapped commands (task tag 0x03)", db.Describe(0x4d, 0x03))
	assert.Equal("Decompression exception short algorithm id of 0x42", db.Describe(0x70, 0x42))
	assert.Equal("vendor specific: asc=0x80, ascq=0x01", db.Describe(0x80, 0x01))
	assert.Equal("vendor specific: asc=0x05, ascq=0x85", db.Describe(0x05, 0x85))
}

func TestDescribeUnknown(t *testing.T) {
	assert.Equal(t, "asc=0x7e, ascq=0x33", NewSenseDb().Describe(0x7e, 0x33))
}

func TestOpenSenseDb(t *testing.T) {
	assert := assert.New(t)

	dbfile := filepath.Join(t.TempDir(), "sensedb.yaml")
	overlay := `
codes:
  - asc: 0xc0
    ascq: 0x01
    description: Vendor diagnostic fault
  - asc: 0x20
    ascq: 0x00
    description: Overridden description
`
	assert.NoError(os.WriteFile(dbfile, []byte(overlay), 0o644))

	db, err := OpenSenseDb(dbfile)
	assert.NoError(err)

	// overlay adds new codes and overrides built-in ones
	assert.Equal("Vendor diagnostic fault", db.Describe(0xc0, 0x01))
	assert.Equal("Overridden description", db.Describe(0x20, 0x00))
	assert.Equal("Medium not present", db.Describe(0x3a, 0x00))
}

func TestOpenSenseDbMissingFile(t *testing.T) {
	db, err := OpenSenseDb("/nonexistent/sensedb.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "Invalid command operation code", db.Describe(0x20, 0x00))
}
