package camera

// Preset names for common configurations
const (
	PresetDefault  = "default"
	PresetHD       = "hd"
	PresetVGA      = "vga"
	PresetLowLight = "lowlight"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		PresetDefault:  DefaultConfig(),
		PresetHD:       HDConfig(),
		PresetVGA:      VGAConfig(),
		PresetLowLight: LowLightConfig(),
	}
}

// PresetNames returns the list of available preset names.
func PresetNames() []string {
	return []string{
		PresetDefault,
		PresetHD,
		PresetVGA,
		PresetLowLight,
	}
}

// GetPreset returns a preset config by name, or nil if not found.
func GetPreset(name string) *Config {
	presets := Presets()
	if cfg, ok := presets[name]; ok {
		return &cfg
	}
	return nil
}

// HDConfig returns 720p at 60 FPS for cameras that can keep up with the
// render loop.
func HDConfig() Config {
	cfg := DefaultConfig()
	cfg.FPS = 60
	return cfg
}

// VGAConfig returns 640x480 capture.
// Use this on slow machines; the picture is scaled up for display.
func VGAConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	return cfg
}

// LowLightConfig keeps the picture bright enough for the face detector
// in a dim room, with a slightly lower detection threshold.
func LowLightConfig() Config {
	cfg := DefaultConfig()
	cfg.Contrast = 1.0
	cfg.Brightness = 0
	cfg.Confidence = 0.6
	return cfg
}
