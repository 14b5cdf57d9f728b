// Package filter provides optional byte-stream transforms wrapped around
// codec output and input, such as the gzip envelope of a .tar.gz archive.
// Every filter is a pair of total functions over arbitrary-length input,
// including empty input.
package filter

// Filter transforms a serialized archive on its way to and from a codec.
type Filter interface {
	// Compress transforms raw codec output into its enveloped form.
	Compress(data []byte) ([]byte, error)

	// Decompress recovers raw codec input from its enveloped form.
	Decompress(data []byte) ([]byte, error)
}

// chunkSize is the window in which filters feed their underlying
// compressor.
const chunkSize = 1024
