// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0 B", FormatBytes(0))
	assert.Equal("999 B", FormatBytes(999))
	assert.Equal("1 KB", FormatBytes(1000))
	assert.Equal("1.5 KB", FormatBytes(1500))
	assert.Equal("500 GB", FormatBytes(500_107_862_016))
	assert.Equal("1.92 TB", FormatBytes(1_920_383_410_176))
}
