// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package fontreg implements a registry of font faces and sized fonts. The
// registry issues the attrtext.FontID handles stored in attributed strings
// and owns the fonts they refer to; an AttrString never dereferences them.
package fontreg

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/swiss"
	"github.com/textkit/attrtext"
)

// FaceID identifies a face registered with a Registry. FaceIDs start at 1.
type FaceID uint32

// SafeValue implements redact.SafeValue.
func (id FaceID) SafeValue() {}

// FaceMetrics describes a face's vertical metrics in ems. A font's metrics in
// pixels are the face's metrics multiplied by the font size.
type FaceMetrics struct {
	Ascender  float32
	Descender float32
	Height    float32
}

func (m FaceMetrics) validate() error {
	if m.Height <= 0 {
		return errors.Errorf("height %g must be positive", m.Height)
	}
	if m.Ascender < 0 || m.Descender > 0 {
		return errors.Errorf("ascender %g must be >= 0 and descender %g must be <= 0",
			m.Ascender, m.Descender)
	}
	return nil
}

type face struct {
	name    string
	metrics FaceMetrics
}

// Font is a face instantiated at a size.
type Font struct {
	ID   attrtext.FontID
	Face FaceID
	// FaceName is the name the face was registered under.
	FaceName string
	// Size is the font size in pixels.
	Size float32
	// Ascender, Descender and Height are in pixels.
	Ascender  float32
	Descender float32
	Height    float32
}

// Name returns the font's name in the "face@size" form accepted by
// Registry.FontByName.
func (f Font) Name() string {
	return f.FaceName + "@" + strconv.FormatFloat(float64(f.Size), 'g', -1, 32)
}

// String implements fmt.Stringer.
func (f Font) String() string {
	return redact.StringWithoutMarkers(f)
}

// SafeFormat implements redact.SafeFormatter.
func (f Font) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s: %s ascender=%s descender=%s height=%s",
		f.ID, redact.SafeString(f.Name()),
		redact.SafeString(formatPixels(f.Ascender)),
		redact.SafeString(formatPixels(f.Descender)),
		redact.SafeString(formatPixels(f.Height)))
}

func formatPixels(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 2, 32)
}

// fontKey identifies a font by face and size in 26.6 fixed point, so sizes
// that differ by less than 1/64 of a pixel share a font.
type fontKey struct {
	face FaceID
	size int32
}

func hashFaceName(k *string, seed uintptr) uintptr {
	return uintptr(xxhash.Sum64String(*k) ^ uint64(seed))
}

func makeFontKey(face FaceID, size float32) fontKey {
	return fontKey{face: face, size: int32(size * 64)}
}

// Registry holds faces and the fonts instantiated from them. A Registry is
// safe for concurrent use.
//
// The zero FontID is reserved for the default font and is never issued.
type Registry struct {
	logger  attrtext.Logger
	metrics *Metrics
	mu          struct {
		sync.RWMutex
		faces       []face
		facesByName swiss.Map[string, FaceID]
		fonts       []Font
		fontsByKey  swiss.Map[fontKey, attrtext.FontID]
	}
}

// New returns an empty registry. A nil logger discards log output.
func New(logger attrtext.Logger) *Registry {
	if logger == nil {
		logger = attrtext.NoopLogger{}
	}
	r := &Registry{logger: logger, metrics: NewMetrics("fontreg")}
	r.mu.facesByName.Init(8, swiss.WithHash[string, FaceID](hashFaceName))
	r.mu.fontsByKey.Init(16)
	return r
}

// RegisterFace adds a face under name. Names must be unique and must not
// contain '@'.
func (r *Registry) RegisterFace(name string, metrics FaceMetrics) (FaceID, error) {
	if name == "" || strings.ContainsAny(name, "@ \t\n") {
		return 0, errors.Errorf("fontreg: invalid face name %q", name)
	}
	if err := metrics.validate(); err != nil {
		return 0, errors.Wrapf(err, "fontreg: invalid metrics for face %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mu.facesByName.Get(name); ok {
		return 0, errors.Errorf("fontreg: face %q already registered", name)
	}
	r.mu.faces = append(r.mu.faces, face{name: name, metrics: metrics})
	id := FaceID(len(r.mu.faces))
	r.mu.facesByName.Put(name, id)
	r.metrics.FacesRegistered.Inc()
	r.logger.Infof("fontreg: registered face %d %q", id, name)
	return id, nil
}

// Metrics returns the registry's counters.
func (r *Registry) Metrics() *Metrics {
	return r.metrics
}

// Face returns the ID of the face registered under name.
func (r *Registry) Face(name string) (FaceID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mu.facesByName.Get(name)
}

// LoadFont returns the font for the face at the given size, creating it if
// no font with the same face and 26.6 fixed-point size exists.
func (r *Registry) LoadFont(faceID FaceID, size float32) (attrtext.FontID, error) {
	if !(size > 0) || math.IsInf(float64(size), 0) {
		return 0, errors.Errorf("fontreg: invalid font size %g", size)
	}
	r.metrics.FontLookups.Inc()
	if id, ok := r.FindFont(faceID, size); ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	k := makeFontKey(faceID, size)
	// Another goroutine may have created the font after FindFont released the
	// read lock.
	if id, ok := r.mu.fontsByKey.Get(k); ok {
		return id, nil
	}
	if faceID == 0 || int(faceID) > len(r.mu.faces) {
		return 0, errors.Errorf("fontreg: unknown face %d", faceID)
	}
	fc := r.mu.faces[faceID-1]
	id := attrtext.FontID(len(r.mu.fonts) + 1)
	f := Font{
		ID:        id,
		Face:      faceID,
		FaceName:  fc.name,
		Size:      size,
		Ascender:  fc.metrics.Ascender * size,
		Descender: fc.metrics.Descender * size,
		Height:    fc.metrics.Height * size,
	}
	r.mu.fonts = append(r.mu.fonts, f)
	r.mu.fontsByKey.Put(k, id)
	r.metrics.FontLoads.Inc()
	r.logger.Infof("fontreg: loaded font %s", f)
	return id, nil
}

// FindFont returns the existing font for the face at the given size.
func (r *Registry) FindFont(faceID FaceID, size float32) (attrtext.FontID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mu.fontsByKey.Get(makeFontKey(faceID, size))
}

// Font returns the font with the given ID. The default font is not a
// registered font.
func (r *Registry) Font(id attrtext.FontID) (Font, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id == attrtext.DefaultFont || int(id) > len(r.mu.fonts) {
		return Font{}, false
	}
	return r.mu.fonts[id-1], true
}

// MustFont is like Font but panics if the font is unknown.
func (r *Registry) MustFont(id attrtext.FontID) Font {
	f, ok := r.Font(id)
	if !ok {
		panic(errors.AssertionFailedf("fontreg: unknown font %s", id))
	}
	return f
}

// FontByName looks up a font by a "face@size" name, loading it if the face
// exists but has not been instantiated at that size.
func (r *Registry) FontByName(name string) (attrtext.FontID, error) {
	faceName, sizeStr, ok := strings.Cut(name, "@")
	if !ok {
		return 0, errors.Errorf("fontreg: invalid font name %q: expected face@size", name)
	}
	size, err := strconv.ParseFloat(sizeStr, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "fontreg: invalid size in font name %q", name)
	}
	faceID, ok := r.Face(faceName)
	if !ok {
		return 0, errors.Errorf("fontreg: unknown face %q", faceName)
	}
	return r.LoadFont(faceID, float32(size))
}

// Fonts returns all fonts in the order they were created.
func (r *Registry) Fonts() []Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Font(nil), r.mu.fonts...)
}
