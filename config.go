package pboc

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _pbocconfig{}
)

// _pbocconfig is a "hidden" struct, just use `pbocConfig`
type _pbocconfig struct {
	outputDir  string
	plotWidth  float64 // inches
	plotHeight float64 // inches
	plotFormat string
}

func defaultConfig() _pbocconfig {
	return _pbocconfig{outputDir: ".", plotWidth: 6, plotHeight: 4, plotFormat: "png"}
}

// pbocConfig returns the pboc configuration. It is read once from
// $PBOC_CONFIG/conf.toml; defaults are used if the variable is unset.
func pbocConfig() _pbocconfig {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("PBOC_CONFIG")
	if confPath == "" {
		config = defaultConfig()
		cfgLoaded = true
		return config
	}
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(confPath)
	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found or invalid: %s", confPath, err))
	}
	def := defaultConfig()
	v.SetDefault("general.output_path", def.outputDir)
	v.SetDefault("plot.width", def.plotWidth)
	v.SetDefault("plot.height", def.plotHeight)
	v.SetDefault("plot.format", def.plotFormat)

	format := strings.ToLower(v.GetString("plot.format"))
	if format != "png" && format != "svg" {
		panic(fmt.Errorf("plot.format must be png or svg, got `%s`", format))
	}
	config = _pbocconfig{
		outputDir:  v.GetString("general.output_path"),
		plotWidth:  v.GetFloat64("plot.width"),
		plotHeight: v.GetFloat64("plot.height"),
		plotFormat: format,
	}
	cfgLoaded = true
	return config
}

// OutputDir returns the directory where runs are exported.
func OutputDir() string {
	return pbocConfig().outputDir
}

// PlotSize returns the configured figure width and height in inches.
func PlotSize() (width, height float64) {
	conf := pbocConfig()
	return conf.plotWidth, conf.plotHeight
}

// PlotFormat returns the configured image format extension (png or svg).
func PlotFormat() string {
	return pbocConfig().plotFormat
}
