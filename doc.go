// Package csvx provides a codec between delimited text and nested Go values.
//
// Every leaf of a value is assigned a dotted column path (owner.name, packages.0, c.1).
// A subtree is either spread across columns or collapsed into a single deferred column
// holding its JSON rendering prefixed with the defer marker (% by default).
// Decoding tolerates incomplete column sets that mix explicit null markers,
// absent columns and deferred blobs.
//
//	format, err := csvx.New()
//	data, err := format.Marshal(vehicles)
//	var decoded []Vehicle
//	err = format.Unmarshal(data, &decoded)
//
// Streaming is supported in both directions with NewEncoder and NewDecoder.
package csvx
