// Package stringx contains the small string helpers shared by the compiler:
// blank checks, case-insensitive suffix handling and identifier conversion.
package stringx
