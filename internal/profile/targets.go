package profile

import "github.com/diskjanitor/diskjanitor/internal/types"

// Catalogue is the built-in set of declarative scan targets. A profile
// selects a subset of these by category (and, for CategoryDevCache,
// by dev tool) rather than naming targets directly — the tagged-variant
// translation of the source's "profile enables which targets"
// polymorphism.
func Catalogue(staleDays int) []types.ScanTarget {
	return []types.ScanTarget{
		{
			Name:      "User Cache",
			Category:  types.CategoryUserCache,
			Patterns:  []string{"~/Library/Caches"},
			Safety:    types.Safe,
			Reason:    "regenerable application cache data",
			Recursive: true,
		},
		{
			Name:      "System Cache",
			Category:  types.CategorySystemCache,
			Patterns:  []string{"/Library/Caches"},
			Safety:    types.Safe,
			Reason:    "regenerable system-level cache data",
			Recursive: true,
		},
		{
			Name:      "User Logs",
			Category:  types.CategoryLogs,
			Patterns:  []string{"~/Library/Logs"},
			Safety:    types.Safe,
			Reason:    "historical application logs",
			Recursive: true,
		},
		{
			Name:      "Temporary Files",
			Category:  types.CategoryTempFiles,
			Patterns:  []string{"/tmp", "/private/var/tmp"},
			Safety:    types.Safe,
			Reason:    "scratch space cleared by the OS on reboot",
			Recursive: true,
		},
		{
			Name:      "Crash Reports",
			Category:  types.CategoryCrashReports,
			Patterns:  []string{"~/Library/Logs/DiagnosticReports"},
			Safety:    types.Safe,
			Reason:    "historical crash diagnostics",
			Recursive: true,
		},
		{
			Name:      "Trash",
			Category:  types.CategoryTrash,
			Patterns:  []string{"~/.Trash"},
			Safety:    types.Caution,
			Reason:    "already marked for deletion by the user",
			Recursive: true,
		},
		{
			Name:      "Browser Cache",
			Category:  types.CategoryBrowserData,
			Patterns: []string{
				"~/Library/Caches/com.apple.Safari",
				"~/Library/Caches/Google/Chrome",
				"~/Library/Caches/Firefox",
			},
			Safety:    types.Safe,
			Reason:    "regenerable browser cache data",
			Recursive: true,
		},
		{
			Name:      "Old Downloads",
			Category:  types.CategoryOldDownload,
			Patterns:  []string{"~/Downloads"},
			Safety:    types.Caution,
			Reason:    "downloaded files untouched since before the stale threshold",
			Recursive: false,
			HasMinAge: true,
			MinAgeDays: staleDays,
		},
		{
			Name:       "Downloaded Installers",
			Category:   types.CategoryDownloadedInstaller,
			Patterns:   []string{"~/Downloads"},
			Safety:     types.Caution,
			Reason:     "installer images normally discarded after use",
			Recursive:  false,
			Extensions: []string{"dmg", "pkg"},
		},
		{
			Name:      "Xcode DerivedData",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolXcode,
			Patterns:  []string{"~/Library/Developer/Xcode/DerivedData"},
			Safety:    types.Safe,
			Reason:    "regenerable build intermediates",
			Recursive: true,
		},
		{
			Name:      "Xcode Archives",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolXcodeArchives,
			Patterns:  []string{"~/Library/Developer/Xcode/Archives"},
			Safety:    types.Caution,
			Reason:    "archived builds, not regenerable without source + signing",
			Recursive: true,
		},
		{
			Name:      "iOS Simulators",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolXcodeSimulators,
			Patterns:  []string{"~/Library/Developer/CoreSimulator/Devices"},
			Safety:    types.Caution,
			Reason:    "simulator device state, regenerable but slow to rebuild",
			Recursive: true,
		},
		{
			Name:      "Docker Data",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolDocker,
			Patterns:  []string{"~/Library/Containers/com.docker.docker/Data/vms"},
			Safety:    types.Dangerous,
			Reason:    "container images and volumes; removal loses unpushed data",
			Recursive: true,
		},
		{
			Name:      "Homebrew Cache",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolHomebrew,
			Patterns:  []string{"~/Library/Caches/Homebrew"},
			Safety:    types.Safe,
			Reason:    "downloaded bottles and sources, re-fetchable",
			Recursive: true,
		},
		{
			Name:      "CocoaPods Cache",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolCocoaPods,
			Patterns:  []string{"~/Library/Caches/CocoaPods"},
			Safety:    types.Safe,
			Reason:    "regenerable dependency cache",
			Recursive: true,
		},
		{
			Name:      "Gradle Cache",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolGradle,
			Patterns:  []string{"~/.gradle/caches"},
			Safety:    types.Safe,
			Reason:    "regenerable dependency and build cache",
			Recursive: true,
		},
		{
			Name:      "Cargo Cache",
			Category:  types.CategoryDevCache,
			DevTool:   types.DevToolCargo,
			Patterns:  []string{"~/.cargo/registry"},
			Safety:    types.Safe,
			Reason:    "re-fetchable crate registry cache",
			Recursive: true,
		},
	}
}
