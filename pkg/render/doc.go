// Package render turns sealed label documents into output files.
//
// The [sink] subpackage holds one renderer per output format:
//
//   - PDF, the print format, via go-pdf/fpdf
//   - PNG page previews via fogleman/gg
//   - JSON layout export, the geometry of every placed element
//
// All renderers read a sealed [sheet.Document] and never modify it.
//
// [sink]: github.com/matzehuels/labelsheet/pkg/render/sink
// [sheet.Document]: github.com/matzehuels/labelsheet/pkg/sheet
package render
