package project

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
)

// Platform identifiers recognized in build files.
const (
	KotlinJVMPluginID           = "org.jetbrains.kotlin.jvm"
	KotlinAndroidPluginID       = "org.jetbrains.kotlin.android"
	KotlinMultiplatformPluginID = "org.jetbrains.kotlin.multiplatform"
	GoPluginID                  = "golang"
	ManifestPluginID            = "srcmap.manifest"
)

// Well-known build file names.
const (
	GradleKotlinScript = "build.gradle.kts"
	GradleGroovyScript = "build.gradle"
	GoModFile          = "go.mod"
	GoWorkFile         = "go.work"
	ManifestFile       = "sourcesets.yaml"
)

var (
	// kotlin("jvm"), kotlin("multiplatform") ...
	reKotlinShorthand = regexp.MustCompile(`\bkotlin\(\s*"(jvm|android|multiplatform)"\s*\)`)
	// id("org.jetbrains.kotlin.jvm"), id 'org.jetbrains.kotlin.jvm', id "..."
	reKotlinID = regexp.MustCompile(`\bid\s*\(?\s*["'](org\.jetbrains\.kotlin\.(?:jvm|android|multiplatform))["']`)
	// alias(libs.plugins.kotlin.jvm), alias(libs.plugins.kotlinAndroid)
	reKotlinAlias = regexp.MustCompile(`\balias\s*\(\s*libs\.plugins\.kotlin[.\-_]?(jvm|android|multiplatform|Jvm|Android|Multiplatform)\s*\)`)
	// apply plugin: 'kotlin-android', apply(plugin = "org.jetbrains.kotlin.jvm")
	reApplyPlugin = regexp.MustCompile(`\bapply\s*(?:\(\s*plugin\s*=|plugin\s*:)\s*["']([\w.\-]+)["']`)
)

// legacyPluginIDs maps the short plugin names accepted by `apply plugin:` to
// their platform identifiers.
var legacyPluginIDs = map[string]string{
	"kotlin":                    KotlinJVMPluginID,
	"kotlin-android":            KotlinAndroidPluginID,
	"kotlin-multiplatform":      KotlinMultiplatformPluginID,
	KotlinJVMPluginID:           KotlinJVMPluginID,
	KotlinAndroidPluginID:       KotlinAndroidPluginID,
	KotlinMultiplatformPluginID: KotlinMultiplatformPluginID,
}

// DetectPluginIDs inspects the build files in dir and returns the platform
// identifiers they declare, without duplicates, in detection order.
func DetectPluginIDs(fsys adapter.SourceFSAdapter, dir m.Path) ([]string, error) {
	var ids []string

	add := func(id string) {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	for _, script := range []string{GradleKotlinScript, GradleGroovyScript} {
		content, err := readOptional(fsys, dir.Join(script))
		if err != nil {
			return nil, err
		}

		for _, id := range ParseBuildScript(string(content)) {
			add(id)
		}
	}

	for _, marker := range []struct {
		file string
		id   string
	}{
		{GoModFile, GoPluginID},
		{GoWorkFile, GoPluginID},
		{ManifestFile, ManifestPluginID},
	} {
		ok, err := exists(fsys, dir.Join(marker.file))
		if err != nil {
			return nil, err
		}

		if ok {
			add(marker.id)
		}
	}

	return ids, nil
}

// ParseBuildScript extracts Kotlin plugin identifiers from a Gradle build
// script, in the order they appear. Commented-out declarations are ignored.
func ParseBuildScript(script string) []string {
	type hit struct {
		pos int
		id  string
	}

	script = stripComments(script)

	var hits []hit

	for _, match := range reKotlinShorthand.FindAllStringSubmatchIndex(script, -1) {
		hits = append(hits, hit{pos: match[0], id: "org.jetbrains.kotlin." + script[match[2]:match[3]]})
	}

	for _, match := range reKotlinID.FindAllStringSubmatchIndex(script, -1) {
		hits = append(hits, hit{pos: match[0], id: script[match[2]:match[3]]})
	}

	for _, match := range reKotlinAlias.FindAllStringSubmatchIndex(script, -1) {
		platform := strings.ToLower(script[match[2]:match[3]])
		hits = append(hits, hit{pos: match[0], id: "org.jetbrains.kotlin." + platform})
	}

	for _, match := range reApplyPlugin.FindAllStringSubmatchIndex(script, -1) {
		if id, ok := legacyPluginIDs[script[match[2]:match[3]]]; ok {
			hits = append(hits, hit{pos: match[0], id: id})
		}
	}

	slices.SortFunc(hits, func(a, b hit) int { return a.pos - b.pos })

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		if !slices.Contains(ids, h.id) {
			ids = append(ids, h.id)
		}
	}

	return ids
}

// stripComments blanks out // and /* */ comments, leaving string literals
// untouched. Byte offsets are preserved.
func stripComments(script string) string {
	out := []byte(script)

	var quote byte

	for i := 0; i < len(out); i++ {
		c := out[i]

		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(out) && out[i+1] == '*':
			end := strings.Index(script[i+2:], "*/")
			stop := len(out)
			if end >= 0 {
				stop = i + 2 + end + 2
			}

			for ; i < stop; i++ {
				if out[i] != '\n' {
					out[i] = ' '
				}
			}

			i--
		}
	}

	return string(out)
}

func readOptional(fsys adapter.SourceFSAdapter, path m.Path) ([]byte, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, nil
}

func exists(fsys adapter.SourceFSAdapter, path m.Path) (bool, error) {
	info, err := fsys.FileInfo(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return !info.IsDir(), nil
}
