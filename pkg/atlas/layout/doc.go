// Package layout computes where each image of an atlas goes.
//
// [Compute] runs a row-major flow layout: images are placed left to right,
// and the cursor wraps to a new row once the row holds the configured number
// of items. In [Columns] mode a row holds N items; in [Rows] mode a row holds
// ceil(count/M) items so that the atlas ends up with M rows. Row height is
// the tallest item placed in it.
//
// The resulting canvas must fit within [MaxSize] on both axes. When it does
// not, Compute fails with CANVAS_TOO_LARGE and reports the computed size;
// it never shrinks the layout on its own.
//
// The query helpers [MinColumns], [MinRows], [MaxPadding] and [MaxCropping]
// give a UI the bounds for its controls. They are pure functions of the same
// inputs.
package layout
