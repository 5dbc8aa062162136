// Package updater registers new migration files in a Qt resource descriptor.
//
// Update loads the descriptor, appends one file entry to the first root-level
// group whose prefix matches, and persists the whole document back to the
// same path. Locking, atomic replacement, and the entry's tag and indentation
// come from the loaded configuration.
package updater
