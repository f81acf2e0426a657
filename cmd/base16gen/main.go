// base16gen - generate base16 colour themes from images
//
// base16gen extracts a colour palette from an image, maps it onto the
// sixteen base16 slots and writes a base16-shell script and a Vim colour
// scheme.
package main

import "github.com/jmylchreest/base16gen/internal/cli"

func main() {
	cli.Execute()
}
