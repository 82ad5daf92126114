// Package spreadsheet reads batch rows for check printing from xlsx or csv
// files. The first row holds the column headers; each following non-blank
// row becomes a map keyed by header.
package spreadsheet
