// Package tckio reads and writes the MRtrix track-file format (.tck): a
// plain-text key-value header followed by embedded binary streamline data.
//
// Format Outline:
//
//	mrtrix tracks              ← magic, always the first line
//	datatype: Float32LE        ← mandatory; Float32BE also accepted
//	count: 21                  ← declared number of streamlines
//	step_size: 0.5             ← optional, free-form keys are preserved
//	file: . 120                ← mandatory; "." = embedded, 120 = byte offset
//	END                        ← header terminator
//	<binary data>              ← float32 triplets (x,y,z) per point;
//	                             (NaN,NaN,NaN) separates streamlines;
//	                             (+Inf,+Inf,+Inf) terminates the stream
//
// Repeated header keys accumulate newline-joined; "comments" lines are
// collected separately. Keys are matched case-insensitively and written
// lowercase.
//
// The package also writes the weights sidecar (one ASCII value per line)
// that carries each exemplar's total streamline weight alongside its
// geometry.
//
// Errors:
//   - ErrBadMagic            — first line is not the track magic.
//   - ErrBadKeyValue         — a header line has no key-value separator.
//   - ErrMissingDatatype     — header lacks the "datatype" key.
//   - ErrUnsupportedDatatype — datatype is not Float32LE/Float32BE.
//   - ErrMissingFile         — header lacks the "file" key.
//   - ErrBadOffset           — non-embedded file or offset before header end.
//   - ErrTruncated           — binary data ends without the Inf terminator.
//
// See examples in example_test.go.
package tckio
