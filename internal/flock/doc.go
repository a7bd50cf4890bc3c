// Package flock provides exclusive, non-blocking file locks for Unix and
// Windows. The history store uses it to serialize appends to the record
// files when several sigil processes run at once.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - file is in use
//	}
//	defer flock.Unlock(file.Fd())
package flock
