// Command qrcmigrate registers a new migration file in a Qt resource
// descriptor.
//
//	qrcmigrate <migration_file_path> <new_filename>
//
// The file entry is appended to the first root-level group whose prefix is
// "/" and the descriptor is rewritten in place. Called with fewer than two
// arguments it prints a notice and exits successfully without touching any
// file. Helper subcommands list a descriptor's groups and manage the
// optional TOML configuration.
package main
