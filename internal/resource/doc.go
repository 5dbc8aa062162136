// Package resource reads, edits, and writes Qt resource (.qrc) migration
// descriptors.
//
// A descriptor is an XML document whose root holds group elements keyed by a
// prefix attribute, each listing file entries. The package keeps the whole
// token stream (whitespace, comments, declarations) so that a load/save cycle
// only changes what an edit touches. Documents that declare a non-UTF-8
// encoding are decoded on read and re-encoded on write, with characters the
// target charset cannot represent emitted as numeric character references.
package resource
