// Package sheet lays labels out on multi-page, two-column sheets.
//
// # Overview
//
// Placement is driven by a [Cursor], the mutable layout state of one
// document build (x, y, column, page count), and a [Placer] that turns one
// [label.Content] into positioned [Element] values at the cursor position.
// Placed labels are collected in a [Document], which is sealed once the build
// is complete and is then read by the output sinks.
//
// # Page flow
//
// Before each label the cursor checks whether the label still fits in the
// current column:
//
//	fits := (PageHeight - y) - height >= MinClearance
//
// If it does not, y returns to the top margin and the cursor moves to
// column 2, or, when already in column 2, to column 1 of a new page. The x
// position is then set to the origin of the current column: LeftMargin for
// column 1, LeftMargin + ColumnOffset for column 2. After placement y
// advances by the label height plus VerticalGap. The label height is the
// printed code side in print units, not the raster side in pixels.
//
// A label taller than an empty column can hold is a configuration error:
// [Config.CheckFits] reports it as a layout overflow before any placement.
//
// # Label geometry
//
// All offsets are relative to the cursor position (x, y) and the code side s:
//
//	+--------+ +-----------------------------------+
//	|  code  | |cap| line 1                        |
//	|  s x s | |tio| line 2                        |
//	|        | | n | line 3                        |
//	+--------+ +-----------------------------------+
//	 x        x+s  x+s+CaptionWidth           x+LabelLength
//
// The frame spans LabelLength - s units starting FrameGap units right of the
// code. The caption cell holds the field number rotated by 90 degrees. Text
// lines share the code height evenly.
//
// # Concurrency
//
// A Cursor and a Document belong to one build and must not be shared between
// goroutines.
package sheet
