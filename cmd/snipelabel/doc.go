// Command snipelabel generates printable label documents for Snipe-IT
// inventory items by filling an ODT template with record fields and a QR
// code that links back to the item.
package main
