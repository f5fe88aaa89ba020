// Package commands defines the magstripe CLI.
//
// Commands
//
//   - decode   Decode one raw reader message (argument, or --remote service)
//   - encode   Build a synthetic reader message from card fields
//   - watch    Decode messages line by line from stdin or a capture file
//   - serve    Run the HTTP reader service
//
// The root command loads the config file and builds the logger before any
// subcommand runs.
package commands
