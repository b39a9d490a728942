// Package manifest writes the visual-elements manifest the shell reads
// to render the product's start tiles.
//
// The manifest only makes sense when the versioned install actually
// ships the VisualElements assets, so writing is conditional on that
// directory being present; a brand without assets is a successful
// no-op.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lumenworks/installkit/pkg/errors"
	"github.com/lumenworks/installkit/pkg/logging"
	"github.com/lumenworks/installkit/pkg/types"
)

// FileName is the manifest file written next to the versioned install
// directory.
const FileName = "VisualElementsManifest.xml"

// VisualElementsDirName holds the tile assets inside a version dir.
const VisualElementsDirName = "VisualElements"

// EscapeXMLAttributeValueInSingleQuotes escapes s for use as a
// single-quoted XML attribute value: ampersands, apostrophes, and '<'
// are escaped. Double quotes and '>' are fine inside a single-quoted
// attribute and are left alone.
func EscapeXMLAttributeValueInSingleQuotes(s string) string {
	// Ampersands first so the entities below aren't double-escaped.
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return s
}

// The shell reads the manifest with single-quoted attributes and CRLF
// line ends; the logo paths are relative to the install dir and use
// backslash separators.
const manifestTemplate = "<Application xmlns:xsi='http://www.w3.org/2001/XMLSchema-instance'>\r\n" +
	"  <VisualElements\r\n" +
	"      ShowNameOnSquare150x150Logo='on'\r\n" +
	"      Square150x150Logo='%[1]s\\%[2]s\\Logo.png'\r\n" +
	"      Square70x70Logo='%[1]s\\%[2]s\\SmallLogo.png'\r\n" +
	"      Square44x44Logo='%[1]s\\%[2]s\\SmallLogo.png'\r\n" +
	"      ForegroundText='light'\r\n" +
	"      BackgroundColor='#303F9F'/>\r\n" +
	"</Application>\r\n"

// CreateVisualElementsManifest writes the manifest into installDir for
// the given version when the version's VisualElements directory exists.
// It reports success without writing anything when the assets are
// absent.
func CreateVisualElementsManifest(fsys types.FS, installDir, version string) error {
	log := logging.GetLogger("manifest")

	assetsDir := filepath.Join(installDir, version, VisualElementsDirName)
	if _, err := fsys.Stat(assetsDir); err != nil {
		log.Debug().Str("dir", assetsDir).Msg("No visual elements, manifest not created")
		return nil
	}

	content := fmt.Sprintf(manifestTemplate,
		EscapeXMLAttributeValueInSingleQuotes(version),
		VisualElementsDirName)

	manifestPath := filepath.Join(installDir, FileName)
	if err := fsys.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrManifest, "writing %s", manifestPath)
	}
	log.Info().Str("path", manifestPath).Msg("Visual elements manifest written")
	return nil
}
