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

// Package crt holds the configuration of the CRT effects. The EffectConfig
// type is an immutable snapshot of every effect parameter and is what the
// rendering pipeline consumes. It is never partially mutated; new settings
// are applied by replacing the snapshot wholesale.
//
// The Preferences type is the persistent, user-editable form of the same
// parameters. A call to Preferences.Snapshot() produces a validated
// EffectConfig.
package crt
