// Package match suggests known names for misspelled ones: member names in
// selectors and type names on the command line.
package match
