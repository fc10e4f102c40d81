// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package intervalmap provides ordered maps from half-open integer intervals
// to values.
//
// Map is the implementation used by attribute layers. It keeps intervals in a
// B-Tree keyed by interval start and implements overwrites with a
// split-erase-insert sequence: the intervals containing the new limit and the
// new start are split at those points, every interval starting inside the new
// range is erased, and the new interval is inserted.
//
// SpanList is a slice-backed implementation of the same contract that
// classifies each insertion against its predecessor instead. It exists as an
// independent implementation that Map is cross-checked against.
//
// Both implementations maintain the following invariants:
//
//   - Every interval satisfies Start < Limit.
//   - Intervals are pairwise non-overlapping.
//   - Traversal order is ascending by Start.
package intervalmap
