package config

const (
	defaultTemplatePath   = "~/Asset-Template.odt"
	defaultOutputPath     = "~/Asset-Label.odt"
	defaultDataDir        = "~/.local/share/snipelabel"
	defaultLogDir         = "~/.local/share/snipelabel/logs"
	defaultRequestTimeout = 15
	defaultItemType       = "assets"
	defaultQRTarget       = "auto"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		SnipeIT: SnipeIT{
			RequestTimeout: defaultRequestTimeout,
		},
		Paths: Paths{
			TemplatePath: defaultTemplatePath,
			OutputPath:   defaultOutputPath,
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
		},
		Labels: Labels{
			ItemType: defaultItemType,
			QRTarget: defaultQRTarget,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
