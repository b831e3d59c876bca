// This file is part of crtterm.
//
// crtterm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// crtterm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with crtterm.  If not, see <https://www.gnu.org/licenses/>.

package resources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/version"
)

const portablePath = ".crtterm"

// baseOverride replaces the base path when not empty. used by tests.
var baseOverride string

func checkPortable() bool {
	info, err := os.Stat(portablePath)
	return err == nil && info.IsDir()
}

func basePath() (string, error) {
	if baseOverride != "" {
		return baseOverride, nil
	}
	if checkPortable() {
		return portablePath, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf("resources: %v", err)
	}
	return filepath.Join(cfg, strings.ToLower(version.ApplicationName)), nil
}

// JoinPath prepends the supplied path with the resource base path.
//
// The function creates all folders necessary to reach the end of sub-path. It
// does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	p := filepath.Join(path...)

	b, err := basePath()
	if err != nil {
		return "", err
	}

	// do not prepend base path if it is already present
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", curated.Errorf("resources: %v", err)
	}

	return p, nil
}

// SetBase changes the base path for all resources. An empty string restores
// the default behaviour.
func SetBase(path string) {
	baseOverride = path
}
