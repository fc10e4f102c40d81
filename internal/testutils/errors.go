// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package testutils contains helpers shared by the tests of the attrtext
// packages.
package testutils

// CheckErr simplifies test code that expects no errors:
//
//	id := testutils.CheckErr(reg.LoadFont(face, 24))
func CheckErr[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}
