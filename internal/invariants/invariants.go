// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants reports whether the module was built with the
// "invariants" or "race" build tags. Expensive structural checks, such as
// re-validating an interval map after every mutation, are gated on Enabled.
package invariants
