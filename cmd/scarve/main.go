package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/scarve/scarve"
	"github.com/scarve/scarve/utils"
)

const helpBanner = `
┌─┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐│  ├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴└─ └┘ └─┘

Content aware image resizer based on seam carving.
    Version: %s

Usage: scarve <input> <output> <width> <height>

  <input>   source image, directory, URL or - for stdin
  <output>  destination image, directory or - for stdout
  <width>   target width in pixels
  <height>  target height in pixels

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
	}
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide the input, the output and the new width and height!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
	args := flag.Args()

	width, err := strconv.Atoi(args[2])
	if err != nil {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nThe new width should be an integer value!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
	height, err := strconv.Atoi(args[3])
	if err != nil {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nThe new height should be an integer value!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	proc := &scarve.Processor{
		NewWidth:  width,
		NewHeight: height,
	}

	proc.Execute(&scarve.Ops{
		Src:      args[0],
		Dst:      args[1],
		PipeName: pipeName,
		Workers:  runtime.NumCPU(),
	})
}
