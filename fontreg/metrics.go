// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package fontreg

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds counters describing registry activity. The counters are
// created unregistered; use Register to expose them.
type Metrics struct {
	// FacesRegistered counts successful RegisterFace calls.
	FacesRegistered prometheus.Counter
	// FontLookups counts LoadFont calls, including those made by FontByName.
	FontLookups prometheus.Counter
	// FontLoads counts fonts created by LoadFont. FontLookups minus FontLoads
	// is the number of lookups served by an existing font or rejected.
	FontLoads prometheus.Counter
}

// NewMetrics returns a set of counters whose names carry the given prefix.
func NewMetrics(prefix string) *Metrics {
	return &Metrics{
		FacesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_faces_registered_total",
			Help: "Number of font faces registered.",
		}),
		FontLookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_font_lookups_total",
			Help: "Number of sized font lookups.",
		}),
		FontLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_font_loads_total",
			Help: "Number of sized fonts created.",
		}),
	}
}

// Register registers the counters with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.FacesRegistered, m.FontLookups, m.FontLoads} {
		if err := reg.Register(c); err != nil {
			return errors.Wrap(err, "fontreg: registering metrics")
		}
	}
	return nil
}
