package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/press"
	"github.com/rmarchant/bitpress/stats"
	"github.com/urfave/cli/v2"
)

func main() {
	kindFlag := &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Value:   "text",
		Usage:   "media kind of the payload: text, image, audio or video",
	}

	app := cli.App{
		Usage: "Compress and expand media files with a prefix code",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress a medium into a container file",
				Action:    compressFile,
				ArgsUsage: "SOURCE_FILE",
				Flags:     []cli.Flag{kindFlag},
			},
			{
				Name:      "decompress",
				Usage:     "Reconstruct a medium from a container file",
				Action:    decompressFile,
				ArgsUsage: "CONTAINER_FILE",
				Flags:     []cli.Flag{kindFlag},
			},
			{
				Name:      "stats",
				Usage:     "Print per-symbol code statistics for a medium as CSV",
				Action:    printStats,
				ArgsUsage: "SOURCE_FILE",
				Flags:     []cli.Flag{kindFlag},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func mediaKindFromContext(context *cli.Context) (bitpress.MediaKind, error) {
	return bitpress.ParseMediaKind(context.String("kind"))
}

func singleArgument(context *cli.Context) (string, error) {
	if context.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one file argument, got %d", context.NArg())
	}
	return context.Args().Get(0), nil
}

func compressFile(context *cli.Context) error {
	sourcePath, err := singleArgument(context)
	if err != nil {
		return err
	}
	kind, err := mediaKindFromContext(context)
	if err != nil {
		return err
	}

	containerPath, err := press.Compress(sourcePath, kind)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", containerPath)
	return nil
}

func decompressFile(context *cli.Context) error {
	containerPath, err := singleArgument(context)
	if err != nil {
		return err
	}
	kind, err := mediaKindFromContext(context)
	if err != nil {
		return err
	}

	outputPath, err := press.Decompress(containerPath, kind)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outputPath)
	return nil
}

func printStats(context *cli.Context) error {
	sourcePath, err := singleArgument(context)
	if err != nil {
		return err
	}
	kind, err := mediaKindFromContext(context)
	if err != nil {
		return err
	}

	report, err := stats.Analyze(sourcePath, kind)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(os.Stdout); err != nil {
		return err
	}
	fmt.Fprintf(
		os.Stderr,
		"%d symbols, %d bytes in, %d payload bits (%.1f%% of original)\n",
		report.SymbolCount,
		report.OriginalBytes,
		report.EncodedBits,
		100*float64(report.EncodedBits)/float64(report.OriginalBytes*8),
	)
	return nil
}
