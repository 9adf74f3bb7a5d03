// Package dump renders expression trees as canonical JSON.
//
// Each node becomes an object with a "node" member naming its variant and
// one member per field. Output follows RFC 8785 conventions so that equal
// trees always produce identical bytes:
//   - object keys sorted by UTF-16 code units
//   - strings NFC normalized, no HTML escaping
//   - numbers written in their canonical literal form
//
// The bytes feed golden snapshots, JSON output, and content hashes.
package dump
