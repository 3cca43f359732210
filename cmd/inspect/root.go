package inspect

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/hexforge/fieldstate/cmd/util"
	"github.com/hexforge/fieldstate/lib/codec"
	"github.com/hexforge/fieldstate/lib/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logger = logging.GetLogger("inspect")

	// InspectCmd validates and describes a serialized stream file
	InspectCmd = &cobra.Command{
		Use:     "inspect <file>",
		Short:   "Validate and describe a serialized state stream",
		Long:    "Validate the framing of a serialized state stream file and print its protocol version and payload size. The body cannot be decoded without the state type's schema, but the header and overall shape are checked.",
		Args:    cobra.ExactArgs(1),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "hex"
	InspectCmd.Flags().Bool(key, false, util.WrapString("Print a hex dump of the payload after the header summary"))

	key = "log-level"
	InspectCmd.Flags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}

func run(_ *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", path, err)
	}
	logger.Debugf("read %d byte(s) from %s", len(data), path)

	info, err := codec.InspectHeader(data)
	if err != nil {
		return err
	}

	fmt.Printf("File:     %s\n", path)
	fmt.Printf("Markers:  %c%c (valid)\n", codec.MarkerByte0, codec.MarkerByte1)
	fmt.Printf("Version:  %d.%d\n", info.Major, info.Minor)
	fmt.Printf("Payload:  %d byte(s)\n", info.PayloadBytes)

	if !info.VersionOK {
		logger.Warningf("stream version %d.%d does not match this build (%d.%d); deserialization would fail",
			info.Major, info.Minor, codec.MajorVersion, codec.MinorVersion)
	}
	if info.PayloadBytes == 0 {
		logger.Warningf("stream has no body, not even a terminator")
	}

	if viper.GetBool("hex") {
		fmt.Println()
		fmt.Print(hex.Dump(data[codec.HeaderSize:]))
	}

	return nil
}
