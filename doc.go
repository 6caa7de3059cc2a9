/*
Package scarve is a content aware image resize library, which can rescale the
source image both vertically and horizontally by carving out the connected
paths of pixels carrying the least energy.

The package provides a command line interface taking the source image, the
destination and the requested width and height as positional arguments:

	$ scarve input.jpg output.jpg 300 200

In case you wish to integrate the API in a self constructed environment here is
a simple example:

	package main

	import (
		"fmt"
		"github.com/scarve/scarve"
	)

	func main() {
		p := &scarve.Processor{
			NewWidth:  300,
			NewHeight: 200,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package scarve
