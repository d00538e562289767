// Package tract provides the streamline primitives shared by the rest of
// tractome: 3-D polylines with scalar weights, the ordered node pair a
// streamline terminates at, and the small geometric toolbox (arc length,
// linear interpolation, squared separation) the averaging and resampling
// algorithms are built on.
//
// Points are gonum spatial vectors (gonum.org/v1/gonum/spatial/r3.Vec), so
// streamlines compose directly with the wider gonum numeric ecosystem.
//
// A Streamline is plain data: the consuming pipeline treats it as read-only
// and never takes ownership, so a caller may recycle the backing slice as
// soon as the consuming call returns.
//
// See examples in example_test.go.
package tract
