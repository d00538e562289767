// Package tckio: the key-value track-file header.
// Keys are case-insensitive, repeated keys accumulate newline-joined,
// comments are collected in order, and the "file" locator is parsed into an
// embedded-data byte offset.
package tckio

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Magic is the first line of every track file.
const Magic = "mrtrix tracks"

// Supported datatype specifiers for the embedded binary data.
const (
	DatatypeFloat32LE = "Float32LE"
	DatatypeFloat32BE = "Float32BE"
)

// Sentinel errors for header parsing and data decoding.
var (
	// ErrBadMagic indicates the input does not start with the track magic.
	ErrBadMagic = errors.New("tckio: not an MRtrix track file")

	// ErrBadKeyValue indicates a header line without a key-value separator.
	ErrBadKeyValue = errors.New("tckio: malformed header line")

	// ErrMissingDatatype indicates a header without a "datatype" key.
	ErrMissingDatatype = errors.New("tckio: missing datatype specification")

	// ErrUnsupportedDatatype indicates a datatype other than Float32LE/BE.
	ErrUnsupportedDatatype = errors.New("tckio: unsupported datatype")

	// ErrMissingFile indicates a header without a "file" key.
	ErrMissingFile = errors.New("tckio: missing file specification")

	// ErrBadOffset indicates a non-embedded locator or an offset that falls
	// inside the header itself.
	ErrBadOffset = errors.New("tckio: invalid embedded data offset")

	// ErrTruncated indicates binary data ending without the Inf terminator.
	ErrTruncated = errors.New("tckio: truncated track data")
)

// Header carries the metadata of one track file.
type Header struct {
	// Datatype is the binary encoding specifier; WriteTracks defaults it to
	// DatatypeFloat32LE when empty.
	Datatype string

	// Count is the declared streamline count; -1 when the header did not
	// declare one.
	Count int

	// Fields preserves every non-reserved key. Repeated keys accumulate
	// newline-joined values.
	Fields map[string]string

	// Comments collects the "comments" lines in order.
	Comments []string

	// offset is the byte offset of the embedded binary data, measured from
	// the start of the file. Populated by readHeader, computed by
	// writeHeader.
	offset int64
}

// NewHeader returns an empty header with no declared count.
func NewHeader() *Header {
	return &Header{Count: -1, Fields: make(map[string]string)}
}

// SetField records a free-form key, joining repeats with a newline.
func (h *Header) SetField(key, value string) {
	key = strings.ToLower(key)
	if prev, ok := h.Fields[key]; ok && prev != "" {
		h.Fields[key] = prev + "\n" + value

		return
	}
	h.Fields[key] = value
}

// readHeader consumes the header from br, returning the parsed Header and
// the number of bytes consumed so far. Reserved keys (datatype, count,
// file, comments) are interpreted; everything else lands in Fields.
func readHeader(br *bufio.Reader) (*Header, int64, error) {
	h := NewHeader()

	var consumed int64
	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		consumed += int64(len(line))

		return strings.TrimRight(line, "\n"), err
	}

	first, err := readLine()
	if err != nil {
		return nil, 0, fmt.Errorf("tckio: reading magic: %w", err)
	}
	if strings.TrimSpace(first) != Magic {
		return nil, 0, ErrBadMagic
	}

	var fileValue string
	for {
		line, err := readLine()
		if err != nil {
			return nil, 0, fmt.Errorf("tckio: reading header: %w", err)
		}
		if strings.TrimSpace(line) == "END" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrBadKeyValue, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "datatype":
			h.Datatype = value
		case "count":
			n, convErr := strconv.Atoi(value)
			if convErr != nil {
				return nil, 0, fmt.Errorf("tckio: invalid count %q: %w", value, convErr)
			}
			h.Count = n
		case "comments":
			h.Comments = append(h.Comments, value)
		case "file":
			fileValue = value
		default:
			h.SetField(key, value)
		}
	}

	if h.Datatype == "" {
		return nil, 0, ErrMissingDatatype
	}
	if h.Datatype != DatatypeFloat32LE && h.Datatype != DatatypeFloat32BE {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnsupportedDatatype, h.Datatype)
	}
	if fileValue == "" {
		return nil, 0, ErrMissingFile
	}

	name, offsetStr, _ := strings.Cut(fileValue, " ")
	if name != "." {
		// Detached data files are an image-format feature; track data is
		// always embedded.
		return nil, 0, fmt.Errorf("%w: data file %q is not embedded", ErrBadOffset, name)
	}
	offset, err := strconv.ParseInt(strings.TrimSpace(offsetStr), 10, 64)
	if err != nil || offset < consumed {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadOffset, fileValue)
	}
	h.offset = offset

	return h, consumed, nil
}

// headerBody serializes every header line except the file locator and the
// END terminator: reserved keys first, then free-form fields (sorted for
// determinism, multi-line values split back into repeated keys), then
// comments.
func (h *Header) headerBody() string {
	var b strings.Builder
	b.WriteString(Magic)
	b.WriteString("\ndatatype: ")
	b.WriteString(h.Datatype)
	if h.Count >= 0 {
		fmt.Fprintf(&b, "\ncount: %d", h.Count)
	}

	keys := make([]string, 0, len(h.Fields))
	for key := range h.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, line := range strings.Split(h.Fields[key], "\n") {
			fmt.Fprintf(&b, "\n%s: %s", key, line)
		}
	}

	for _, c := range h.Comments {
		fmt.Fprintf(&b, "\ncomments: %s", c)
	}

	return b.String()
}

// render serializes the complete header including the embedded-data
// locator, whose offset depends on the header's own length; the offset is
// resolved by fixpoint iteration over the rendered size.
func (h *Header) render() string {
	body := h.headerBody()

	offset := int64(len(body))
	for {
		full := fmt.Sprintf("%s\nfile: . %d\nEND\n", body, offset)
		if int64(len(full)) <= offset {
			h.offset = offset

			return full + strings.Repeat(" ", int(offset)-len(full))
		}
		offset = int64(len(full))
	}
}
