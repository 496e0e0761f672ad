// Package geometry implements the geometry section (spec §4.4, component
// C4): a per-signal width table written once, right before the first
// value-change section.
package geometry

import (
	"fmt"
	"io"

	"github.com/ekiwi/fst-writer/endian"
	"github.com/ekiwi/fst-writer/section"
)

// WriteBlock emits the Geometry block for signalTypes, which must be given
// in registration order and contain only non-alias signals (aliases share
// their target's storage and are not separately sized).
//
// Block body layout: uncompressed_len:u64 | max_handle:u64 |
// variant_u64(width) per signal, where both u64 fields are big-endian
// placeholders patched once the widths are written. The geometry body is
// never compressed; the "uncompressed length" field records the length of
// the width table that follows the two u64 fields (the block length minus
// 24 bytes).
func WriteBlock(w io.WriteSeeker, signalTypes []section.SignalType) error {
	bw, err := section.BeginBlock(w, section.TagGeometry)
	if err != nil {
		return err
	}

	lenPatch, err := bw.ReservePatch()
	if err != nil {
		return fmt.Errorf("geometry: reserve length field: %w", err)
	}
	handlePatch, err := bw.ReservePatch()
	if err != nil {
		return fmt.Errorf("geometry: reserve max-handle field: %w", err)
	}

	bodyStart, err := bw.Pos()
	if err != nil {
		return err
	}

	var scratch []byte
	for _, st := range signalTypes {
		scratch = scratch[:0]
		scratch = endian.AppendVariantU64(scratch, st.GeometryWidth())
		if _, err := bw.Write(scratch); err != nil {
			return fmt.Errorf("geometry: write width: %w", err)
		}
	}

	bodyEnd, err := bw.Pos()
	if err != nil {
		return err
	}

	if err := bw.PatchU64(lenPatch, uint64(bodyEnd-bodyStart)); err != nil { //nolint:gosec
		return err
	}
	if err := bw.PatchU64(handlePatch, uint64(len(signalTypes))); err != nil { //nolint:gosec
		return err
	}

	_, err = bw.End()
	return err
}
