// Package units converts between screen pixels and the physical units a check
// layout is measured in (millimetres, centimetres, inches) at a fixed 96 px per
// inch, and derives ruler tick spacing for a visible extent.
package units
