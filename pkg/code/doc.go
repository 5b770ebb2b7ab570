// Package code rasterizes label payloads into square machine-readable codes.
//
// # Pipeline
//
// [Rasterizer.Rasterize] runs three steps for a payload:
//
//  1. Encode: the payload is encoded with the configured [Symbology]
//     (Data Matrix by default) and drawn as a raw raster in which every
//     module is ModulePx pixels wide, surrounded by a white margin of
//     MarginPx pixels. A 10x10 Data Matrix therefore yields the 70x70 raw
//     raster the label sheets were designed around.
//  2. Crop: the fixed MarginPx inset is removed, leaving the square core.
//  3. Resample: the core is resized to SidePx with the configured [Filter]
//     (Lanczos by default) and returned as an 8-bit gray image.
//
// Rasterization is a pure function of the payload and [Options]. It is safe
// to run concurrently for different payloads, and its output can be cached.
//
// # Errors
//
// Empty payloads, non-ASCII payloads, and payloads the symbology cannot hold
// fail with an ENCODING_ERROR. A blank raster is never produced.
package code
