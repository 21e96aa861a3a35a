// Package snipeit talks to the Snipe-IT asset management API and flattens the
// records it returns.
//
// The API exposes different schemas for hardware, accessories, consumables,
// and components, so nothing here models named fields: Fetch hands back the
// raw decoded object and Flatten turns any shape into a flat tag->value map
// that a label template can reference.
package snipeit
