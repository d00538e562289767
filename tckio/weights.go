// Package tckio: the track-weights sidecar, one ASCII value per line.
package tckio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteWeights serializes one weight per line.
func WriteWeights(w io.Writer, weights []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range weights {
		if _, err := fmt.Fprintf(bw, "%g\n", v); err != nil {
			return fmt.Errorf("tckio: writing weights: %w", err)
		}
	}

	return bw.Flush()
}

// ReadWeights parses a weights sidecar; blank lines are ignored.
func ReadWeights(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("tckio: invalid weight %q: %w", line, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tckio: reading weights: %w", err)
	}

	return out, nil
}
