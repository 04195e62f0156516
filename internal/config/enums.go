package config

import (
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
)

// BrokenLinkPolicy decides what happens when an internal link has no target.
type BrokenLinkPolicy string

const (
	BrokenLinkThrow  BrokenLinkPolicy = "throw"
	BrokenLinkWarn   BrokenLinkPolicy = "warn"
	BrokenLinkIgnore BrokenLinkPolicy = "ignore"
)

var brokenLinkNormalizer = normalization.NewEnumNormalizer("broken link policy", map[string]BrokenLinkPolicy{
	"throw":  BrokenLinkThrow,
	"error":  BrokenLinkThrow,
	"warn":   BrokenLinkWarn,
	"ignore": BrokenLinkIgnore,
}, BrokenLinkThrow)

// NormalizeBrokenLinkPolicy returns the canonical policy or "" when raw is unknown.
func NormalizeBrokenLinkPolicy(raw string) BrokenLinkPolicy {
	if !brokenLinkNormalizer.IsKnown(raw) {
		return ""
	}
	return brokenLinkNormalizer.Normalize(raw)
}

// Banner is the notice shown above the pages of a version.
type Banner string

const (
	BannerNone         Banner = "none"
	BannerUnreleased   Banner = "unreleased"
	BannerUnmaintained Banner = "unmaintained"
)

var bannerNormalizer = normalization.NewEnumNormalizer("banner", map[string]Banner{
	"none":         BannerNone,
	"unreleased":   BannerUnreleased,
	"unmaintained": BannerUnmaintained,
}, BannerNone)

// NormalizeBanner returns the canonical banner or "" when raw is unknown.
func NormalizeBanner(raw string) Banner {
	if !bannerNormalizer.IsKnown(raw) {
		return ""
	}
	return bannerNormalizer.Normalize(raw)
}

// ColorMode is the initial theme mode.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

var colorModeNormalizer = normalization.NewEnumNormalizer("color mode", map[string]ColorMode{
	"light": ColorModeLight,
	"dark":  ColorModeDark,
}, ColorModeLight)

func NormalizeColorMode(raw string) ColorMode {
	if !colorModeNormalizer.IsKnown(raw) {
		return ""
	}
	return colorModeNormalizer.Normalize(raw)
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewEnumNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	if !logLevelNormalizer.IsKnown(raw) {
		return ""
	}
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewEnumNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	if !logFormatNormalizer.IsKnown(raw) {
		return ""
	}
	return logFormatNormalizer.Normalize(raw)
}
