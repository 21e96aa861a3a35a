// Package pipeline orchestrates one label generation end to end: unpack the
// template archive, validate its placeholder image and tags, fetch and
// flatten the inventory record, regenerate the QR code, render the text
// part, and repack the archive.
//
// Runs are strictly sequential; each owns a private temporary working
// directory that is released on every exit path.
package pipeline
