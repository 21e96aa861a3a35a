// Package archive unpacks and repacks the zip container an ODT label
// template lives in.
//
// ODT readers are picky about member layout: the mimetype entry is stored
// uncompressed while XML parts are deflated, and renaming or re-compressing
// members breaks the file for the office suite that produced it. Unpack
// therefore records every entry's compression method in a Manifest, and
// Repack replays that manifest so the rewritten container round-trips.
package archive
