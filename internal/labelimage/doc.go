// Package labelimage generates the QR code raster that replaces a label
// template's placeholder image.
package labelimage
