package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: results, errors with hints
//	1 (-v)      - + progress, startup info, job lifecycle
//	2 (-vv)     - + codec parse timing, resource readiness, config loaded
//	3 (-vvv)    - + per-byte stream offsets, watchdog arm/reset, internal flow
//	4 (-vvvv)   - + full wire dumps, queue snapshots

// OutputCategory defines a category of output that can be enabled/disabled.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota
	OutputErrors
	OutputUserStatus

	// Level 1 (-v) - Informational
	OutputProgress
	OutputStartup
	OutputJobLifecycle
	OutputResourceLifecycle

	// Level 2 (-vv) - Detailed
	OutputTiming
	OutputConfig
	OutputResourceReadiness
	OutputQueueStats

	// Level 3 (-vvv) - Debug
	OutputStreamOffsets
	OutputWatchdog
	OutputInternalFlow

	// Level 4 (-vvvv) - Full dump
	OutputWireDump
	OutputQueueSnapshot
	OutputDataDump
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:          VerbosityInfo,
	OutputStartup:           VerbosityInfo,
	OutputJobLifecycle:      VerbosityInfo,
	OutputResourceLifecycle: VerbosityInfo,

	OutputTiming:            VerbosityDebug,
	OutputConfig:            VerbosityDebug,
	OutputResourceReadiness: VerbosityDebug,
	OutputQueueStats:        VerbosityDebug,

	OutputStreamOffsets: VerbosityTrace,
	OutputWatchdog:      VerbosityTrace,
	OutputInternalFlow:  VerbosityTrace,

	OutputWireDump:      VerbosityAll,
	OutputQueueSnapshot: VerbosityAll,
	OutputDataDump:      VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity.
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:           "results",
	OutputErrors:            "errors",
	OutputUserStatus:        "status",
	OutputProgress:          "progress",
	OutputStartup:           "startup",
	OutputJobLifecycle:      "job-lifecycle",
	OutputResourceLifecycle: "resource-lifecycle",
	OutputTiming:            "timing",
	OutputConfig:            "config",
	OutputResourceReadiness: "resource-readiness",
	OutputQueueStats:        "queue-stats",
	OutputStreamOffsets:     "stream-offsets",
	OutputWatchdog:          "watchdog",
	OutputInternalFlow:      "internal-flow",
	OutputWireDump:          "wire-dump",
	OutputQueueSnapshot:     "queue-snapshot",
	OutputDataDump:          "data-dump",
}

// CategoryName returns the human-readable name for an output category.
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity.
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level.
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, job/resource lifecycle"
	case VerbosityDebug:
		return "above + timing, config, resource readiness, queue stats"
	case VerbosityTrace:
		return "above + stream offsets, watchdog events"
	case VerbosityAll:
		return "above + full wire and queue dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}

// SlowThresholdMS is the threshold in milliseconds above which timing is always shown.
const SlowThresholdMS = 100

// ShouldShowTiming returns true if timing info should be displayed.
// Shows if: verbosity >= 2 (-vv) OR operation exceeded slow threshold.
func ShouldShowTiming(verbosity int, durationMS int64) bool {
	if durationMS >= SlowThresholdMS {
		return true
	}
	return ShouldOutput(verbosity, OutputTiming)
}

// ShouldShowTimingAlways returns true if timing should always be shown (slow operation).
func ShouldShowTimingAlways(durationMS int64) bool {
	return durationMS >= SlowThresholdMS
}
