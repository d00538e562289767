// Package tckio: embedded binary track data.
// Float32 triplets in the header-declared byte order; a NaN triplet closes
// each streamline and an Inf triplet closes the stream.
package tckio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tractome/tract"
)

// byteOrder maps a validated datatype specifier to its encoding.
func byteOrder(datatype string) binary.ByteOrder {
	if datatype == DatatypeFloat32BE {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// ReadTracks parses a complete track file: header, then every embedded
// streamline until the Inf terminator. Returns ErrTruncated when the data
// ends before the terminator.
// Complexity: O(total points)
func ReadTracks(r io.Reader) (*Header, [][]r3.Vec, error) {
	br := bufio.NewReader(r)
	h, consumed, err := readHeader(br)
	if err != nil {
		return nil, nil, err
	}

	// The binary data starts at the declared offset; skip any padding
	// between the header terminator and the data.
	if skip := h.offset - consumed; skip > 0 {
		if _, err = io.CopyN(io.Discard, br, skip); err != nil {
			return nil, nil, fmt.Errorf("tckio: skipping to data offset: %w", err)
		}
	}

	order := byteOrder(h.Datatype)
	var (
		tracks  [][]r3.Vec
		current []r3.Vec
		buf     [12]byte
	)
	for {
		if _, err = io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, nil, ErrTruncated
			}

			return nil, nil, fmt.Errorf("tckio: reading track data: %w", err)
		}
		x := float64(math.Float32frombits(order.Uint32(buf[0:4])))
		y := float64(math.Float32frombits(order.Uint32(buf[4:8])))
		z := float64(math.Float32frombits(order.Uint32(buf[8:12])))

		switch {
		case math.IsInf(x, 1):
			// End of stream; an unterminated final streamline is kept.
			if len(current) > 0 {
				tracks = append(tracks, current)
			}

			return h, tracks, nil
		case math.IsNaN(x):
			if len(current) > 0 {
				tracks = append(tracks, current)
				current = nil
			}
		default:
			current = append(current, r3.Vec{X: x, Y: y, Z: z})
		}
	}
}

// WriteTracks serializes the header and every streamline's geometry. The
// header's Count and offset are filled in; a nil header gets sensible
// defaults. Points are narrowed to float32, matching the on-disk datatype.
// Complexity: O(total points)
func WriteTracks(w io.Writer, h *Header, tracks [][]r3.Vec) error {
	if h == nil {
		h = NewHeader()
	}
	if h.Datatype == "" {
		h.Datatype = DatatypeFloat32LE
	}
	if h.Datatype != DatatypeFloat32LE && h.Datatype != DatatypeFloat32BE {
		return fmt.Errorf("%w: %q", ErrUnsupportedDatatype, h.Datatype)
	}
	h.Count = len(tracks)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(h.render()); err != nil {
		return fmt.Errorf("tckio: writing header: %w", err)
	}

	order := byteOrder(h.Datatype)
	var buf [12]byte
	writeTriplet := func(x, y, z float32) error {
		order.PutUint32(buf[0:4], math.Float32bits(x))
		order.PutUint32(buf[4:8], math.Float32bits(y))
		order.PutUint32(buf[8:12], math.Float32bits(z))
		_, err := bw.Write(buf[:])

		return err
	}

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, pts := range tracks {
		for _, p := range pts {
			if err := writeTriplet(float32(p.X), float32(p.Y), float32(p.Z)); err != nil {
				return fmt.Errorf("tckio: writing track data: %w", err)
			}
		}
		if err := writeTriplet(nan, nan, nan); err != nil {
			return fmt.Errorf("tckio: writing track separator: %w", err)
		}
	}
	if err := writeTriplet(inf, inf, inf); err != nil {
		return fmt.Errorf("tckio: writing track terminator: %w", err)
	}

	return bw.Flush()
}

// WriteExemplars serializes finalized exemplar streamlines as a track file
// plus the per-streamline weights sidecar. The step size is recorded in the
// header for downstream tools. weights may be nil to skip the sidecar.
func WriteExemplars(tracks, weights io.Writer, exemplars []tract.Streamline, stepSize float64) error {
	h := NewHeader()
	h.SetField("step_size", fmt.Sprintf("%g", stepSize))

	geom := make([][]r3.Vec, len(exemplars))
	ws := make([]float64, len(exemplars))
	for i, s := range exemplars {
		geom[i] = s.Points
		ws[i] = s.Weight
	}

	if err := WriteTracks(tracks, h, geom); err != nil {
		return err
	}
	if weights == nil {
		return nil
	}

	return WriteWeights(weights, ws)
}
