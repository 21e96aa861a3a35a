// Package doctemplate reads and rewrites the label template's document parts:
// the content.xml text part carrying {{tag}} placeholders and the single
// placeholder image under Pictures/.
package doctemplate
