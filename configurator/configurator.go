package configurator

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/VasiliyTurchenko/gerbergen/attributes"
	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/gerberstates"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

const (
	CfgFormatIntegerDigits   string = "format.IntegerDigits"
	CfgFormatDecimalDigits   string = "format.DecimalDigits"
	CfgFormatZeroSuppression string = "format.ZeroSuppression"
	CfgFormatCoordinateMode  string = "format.CoordinateMode"
	CfgFormatUnits           string = "format.Units"

	CfgSoftwareVendor      string = "software.Vendor"
	CfgSoftwareApplication string = "software.Application"
	CfgSoftwareVersion     string = "software.Version"

	CfgOutputFinalNewline  string = "output.FinalNewline"
	CfgOutputHeaderComment string = "output.HeaderComment"
)

func SetDefaults(v *viper.Viper) {
	v.SetConfigName("config") // no need to include file extension
	v.AddConfigPath(".")      // set the path of your config file
	v.SetConfigType("toml")

	// coordinate format
	v.SetDefault(CfgFormatIntegerDigits, 2)
	v.SetDefault(CfgFormatDecimalDigits, 6)
	v.SetDefault(CfgFormatZeroSuppression, "leading")
	v.SetDefault(CfgFormatCoordinateMode, "absolute")
	v.SetDefault(CfgFormatUnits, "mm")

	// .GenerationSoftware
	v.SetDefault(CfgSoftwareVendor, "gerbergen")
	v.SetDefault(CfgSoftwareApplication, "gerbergen")
	v.SetDefault(CfgSoftwareVersion, "")

	//
	v.SetDefault(CfgOutputFinalNewline, true)
	v.SetDefault(CfgOutputHeaderComment, "")
}

// ProcessConfigFile reads the config file, a missing file leaves the defaults
func ProcessConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		glog.Infoln("using config file", v.ConfigFileUsed())
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		glog.Infoln("no config file found, using defaults")
		return nil
	}
	glog.Errorln("configuration file error:", err)
	return errors.Wrap(err, "configuration file error")
}

// Settings of the generated files
type Settings struct {
	Format        xy.FormatSpec
	Units         gbt.Unit
	Vendor        string
	Application   string
	Version       string
	FinalNewline  bool
	HeaderComment string
}

// Load reads and checks the settings
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	integer, decimal := v.GetInt(CfgFormatIntegerDigits), v.GetInt(CfgFormatDecimalDigits)
	if integer < 1 || integer > xy.MaxIntegerDigits || decimal < 1 || decimal > xy.MaxDecimalDigits {
		return s, gbt.NewError(gbt.ErrCodeNumberFormat, "bad coordinate format %d.%d", integer, decimal)
	}
	s.Format = xy.NewFormatSpec(uint8(integer), uint8(decimal))

	switch strings.ToLower(v.GetString(CfgFormatZeroSuppression)) {
	case "leading":
		s.Format.Suppression = gbt.SuppressLeading
	case "trailing":
		s.Format.Suppression = gbt.SuppressTrailing
	case "none":
		s.Format.Suppression = gbt.SuppressNone
	default:
		return s, badValue(v, CfgFormatZeroSuppression)
	}

	switch strings.ToLower(v.GetString(CfgFormatCoordinateMode)) {
	case "absolute":
		s.Format.Mode = gbt.CoordModeAbsolute
	case "incremental":
		s.Format.Mode = gbt.CoordModeIncremental
	default:
		return s, badValue(v, CfgFormatCoordinateMode)
	}

	switch strings.ToLower(v.GetString(CfgFormatUnits)) {
	case "mm", "millimeters":
		s.Units = gbt.UnitMillimeters
	case "in", "inches":
		s.Units = gbt.UnitInches
	default:
		return s, badValue(v, CfgFormatUnits)
	}

	s.Vendor = v.GetString(CfgSoftwareVendor)
	s.Application = v.GetString(CfgSoftwareApplication)
	s.Version = v.GetString(CfgSoftwareVersion)
	s.FinalNewline = v.GetBool(CfgOutputFinalNewline)
	s.HeaderComment = v.GetString(CfgOutputHeaderComment)

	if err := attributes.GenerationSoftware(s.Vendor, s.Application, s.Version).Validate(); err != nil {
		return s, errors.Wrap(err, "software settings")
	}
	return s, nil
}

func badValue(v *viper.Viper, key string) error {
	return gbt.NewError(gbt.ErrCodeInvalidParameter, "bad value %q of %s", v.GetString(key), key)
}

// Preamble returns the header commands of a file: the optional comment,
// FS, MO and .GenerationSoftware
func (s Settings) Preamble() []gbt.Command {
	retVal := make([]gbt.Command, 0, 4)
	if s.HeaderComment != "" {
		retVal = append(retVal, gerberstates.NewComment(s.HeaderComment))
	}
	retVal = append(retVal,
		gerberstates.NewCoordinateFormat(s.Format),
		gerberstates.NewUnits(s.Units),
		attributes.GenerationSoftware(s.Vendor, s.Application, s.Version),
	)
	return retVal
}

func DiagnosticAllCfgPrint(v *viper.Viper) {
	c := v.AllSettings()
	for key, data := range c {
		glog.Infoln(key, ":", fmt.Sprint(data))
	}
}
