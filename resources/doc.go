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

// Package resources contains functions to prepare paths for crtterm
// resources.
//
// If a directory named ".crtterm" exists in the current working directory
// then that directory is used as the base for all resources. This allows a
// portable installation. Otherwise the base is a "crtterm" directory in the
// user's configuration directory, as returned by os.UserConfigDir().
package resources
