// Package swatch derives stable display colors from UUIDs.
//
// Clients on every platform must render the same entity with the same
// color, without coordinating through a lookup table. The derivation
// is therefore a pure function of the identifier and an optional seed:
//
//	sum       = xxHash64(id bytes, seed)
//	hue       = high32(sum) / MaxUint32 * 360
//	lightness = low32(sum) / MaxUint32 * 0.6 + 0.2
//	color     = HSL(hue, 1.0, lightness) -> RGB
//
// plus an advisory is-dark flag for choosing a readable foreground.
//
// # Determinism
//
// Identical (id, seed) inputs produce bit-identical results across
// runs, processes, and platforms. An implementation on another
// platform reproduces the mapping by pinning the same pieces:
//
//   - Identifier bytes: the RFC 4122 big-endian encoding, i.e. the
//     16-byte array underlying uuid.UUID.
//   - Hash: xxHash64, with the seed passed as the algorithm's native
//     64-bit seed (the int64 reinterpreted as uint64).
//   - Digest split: big-endian. The high 32 bits of the sum drive hue,
//     the low 32 bits drive lightness.
//   - Channel scaling: fractional channels are scaled by 256 and
//     truncated, capped at 255. Never rounded.
//
// Changing the seed re-maps every identifier at once, which yields
// unrelated color sets for the same entities in different contexts.
//
// The nil UUID is special-cased to black with IsDark set; it never
// reaches the hash.
//
// # Usage
//
//	sw := swatch.FromUUID(tagID, 0)
//	chip.Background = sw.Hex()
//	if sw.IsDark {
//		chip.Foreground = "#FFFFFF"
//	}
//
// The hash is not cryptographic; a color reveals nothing about its
// identifier and offers no collision resistance.
package swatch
