package main

import (
	"diskprobe/cli"
	"diskprobe/lib/cnst"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
)

func main() {
	app := kingpin.New("diskprobe", "Partition table inspector for raw disk images")
	app.Version("diskprobe v1.2")
	sectorSize := app.Flag(cnst.FlagSectorSize, "Sector size in bytes").Short(cnst.FlagSectorSizeShort).Default("512").Uint64()
	verbose := app.Flag(cnst.FlagVerbose, "Enable verbose output").Short(cnst.FlagVerboseShort).Default("false").Bool()
	types := app.Flag(cnst.FlagTypes, "Extra partition type names, CSV rows of code,name").Short(cnst.FlagTypesShort).String()

	cmdinspect := app.Command(cnst.CmdInspect, "Hash an image, decode its partition table, and dump boot records")
	inspectImage := cmdinspect.Arg(cnst.OperandImage, "Path of the raw disk image").Required().String()
	offsets := cmdinspect.Flag(cnst.FlagOffset, "Byte offset into each used MBR partition for boot record dumps").Short(cnst.FlagOffsetShort).Int64List()
	skipHash := cmdinspect.Flag(cnst.FlagSkipHash, "Skip hash artifact generation").Short(cnst.FlagSkipHashShort).Default("false").Bool()
	reportPath := cmdinspect.Flag(cnst.FlagReport, "Save a msgpack report artifact to this path").Short(cnst.FlagReportShort).String()

	cmdhash := app.Command(cnst.CmdHash, "Generate hash artifacts for an image")
	hashImage := cmdhash.Arg(cnst.OperandImage, "Path of the raw disk image").Required().String()

	cmdextract := app.Command(cnst.CmdExtract, "Dump boot records at absolute byte offsets")
	extractImage := cmdextract.Arg(cnst.OperandImage, "Path of the raw disk image").Required().String()
	extractOffsets := cmdextract.Flag(cnst.FlagOffset, "Absolute byte offset of each boot record").Short(cnst.FlagOffsetShort).Required().Int64List()

	var err error

	parsed := kingpin.MustParse(app.Parse(os.Args[1:]))
	cnst.VERBOSE = *verbose

	if cnst.VERBOSE {
		color.Cyan("🔍 verbose mode enabled 🔍")
	}

	switch parsed {
	case cmdinspect.FullCommand():
		err = cli.InspectImage(*inspectImage, *types, *reportPath, *offsets, *sectorSize, *skipHash)
	case cmdhash.FullCommand():
		err = cli.HashData(*hashImage)
	case cmdextract.FullCommand():
		err = cli.ExtractRecords(*extractImage, *extractOffsets)
	}

	handle(err)
}

func handle(err error) {
	if err != nil {
		fmt.Printf("\n\n %v \n\n", err)
		os.Exit(1)
	}
}
