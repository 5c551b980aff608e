// Package profile implements named target sets: a capability-based
// enablement layer over the built-in target catalogue, the
// language-neutral translation of "which targets a profile scans" as a
// set-membership test rather than dynamic dispatch.
package profile

import "github.com/diskjanitor/diskjanitor/internal/types"

// Profile names which categories and dev tools are in scope for a scan,
// plus the thresholds that parameterise target selection and the
// specialised scanners.
type Profile struct {
	Name                 string
	Categories           map[types.Category]bool
	DevTools             map[types.DevTool]bool
	StaleDays            int
	LargeFileThresholdMB int64
}

// DefaultStaleDays and DefaultLargeFileThresholdMB are the fallback
// thresholds used when configuration doesn't override them.
const (
	DefaultStaleDays            = 30
	DefaultLargeFileThresholdMB = 500
)

// EnablesCategory reports whether c is in scope for p.
func (p Profile) EnablesCategory(c types.Category) bool {
	return p.Categories[c]
}

// EnablesDevTool reports whether t is in scope for p. Only meaningful
// when CategoryDevCache is also enabled.
func (p Profile) EnablesDevTool(t types.DevTool) bool {
	return p.DevTools[t]
}

// EnablesDevProjectScanning reports whether any dev tool is enabled —
// the gate the Scan Orchestrator uses to decide whether to run the
// stale-dependency and stale-venv scanners at all.
func (p Profile) EnablesDevProjectScanning() bool {
	return len(p.DevTools) > 0
}

// Default is the baseline profile: system/user hygiene categories only,
// no developer caches.
func Default() Profile {
	return Profile{
		Name: "default",
		Categories: map[types.Category]bool{
			types.CategorySystemCache:         true,
			types.CategoryUserCache:           true,
			types.CategoryLogs:                true,
			types.CategoryTempFiles:           true,
			types.CategoryCrashReports:        true,
			types.CategoryTrash:               true,
			types.CategoryBrowserData:         true,
			types.CategoryOldDownload:         true,
			types.CategoryDownloadedInstaller: true,
			types.CategoryLargeFile:           true,
		},
		DevTools:             map[types.DevTool]bool{},
		StaleDays:            DefaultStaleDays,
		LargeFileThresholdMB: DefaultLargeFileThresholdMB,
	}
}

// Developer extends Default with every developer-cache dev tool and the
// stale dependency-directory scanners.
func Developer() Profile {
	p := Default()
	p.Name = "developer"
	p.Categories[types.CategoryDevCache] = true
	p.DevTools = map[types.DevTool]bool{
		types.DevToolXcode:            true,
		types.DevToolXcodeArchives:    true,
		types.DevToolXcodeSimulators:  true,
		types.DevToolDocker:           true,
		types.DevToolNodeModules:      true,
		types.DevToolVenv:             true,
		types.DevToolHomebrew:         true,
		types.DevToolCocoaPods:        true,
		types.DevToolGradle:           true,
		types.DevToolCargo:            true,
	}
	return p
}

// ByName resolves a profile by its configured name.
func ByName(name string) (Profile, bool) {
	switch name {
	case "default", "":
		return Default(), true
	case "developer":
		return Developer(), true
	default:
		return Profile{}, false
	}
}

// EnabledTargets returns the catalogue targets this profile has in
// scope: category enabled, and for CategoryDevCache targets, the
// specific dev tool also enabled.
func EnabledTargets(p Profile) []types.ScanTarget {
	var out []types.ScanTarget
	for _, t := range Catalogue(p.StaleDays) {
		if !p.EnablesCategory(t.Category) {
			continue
		}
		if t.Category == types.CategoryDevCache && !p.EnablesDevTool(t.DevTool) {
			continue
		}
		out = append(out, t)
	}
	return out
}
