package main

import (
	"fmt"
	"os"

	"github.com/rmarchant/bitpress/container"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(
			os.Stderr,
			"Dump the header of a bitpress container.\nUsage: %s container-file\n",
			os.Args[0])
		os.Exit(1)
	}

	containerPath := os.Args[1]
	cont, err := container.Read(containerPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read container `%v`: %s\n", containerPath, err)
		os.Exit(2)
	}

	fmt.Printf("kind:           %s\n", cont.Kind)
	fmt.Printf("table entries:  %d\n", len(cont.Table))
	fmt.Printf("payload bits:   %d\n", cont.Bits.Len())
	if cont.Raster != nil {
		fmt.Printf(
			"raster:         %dx%d, %d channels, %d pad bits\n",
			cont.Raster.Width,
			cont.Raster.Height,
			cont.Raster.Channels,
			cont.Raster.PaddingBits,
		)
	}
}
