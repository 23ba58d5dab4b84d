// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package doc

import (
	"embed"
	"sort"

	"gopkg.in/yaml.v3"
)

// FS serves vault.yaml, the OpenAPI document of the vault api.
//
//go:embed vault.yaml
var FS embed.FS

var document struct {
	Info struct {
		Version string
	}
	Paths map[string]any
}

func init() {
	content, err := FS.ReadFile("vault.yaml")
	if err != nil {
		panic(err)
	}
	if err := yaml.Unmarshal(content, &document); err != nil {
		panic(err)
	}
}

// Version is the api version, sent in the x-vault-ver header.
func Version() string {
	return document.Info.Version
}

// Paths lists the documented routes, sorted.
func Paths() []string {
	paths := make([]string, 0, len(document.Paths))
	for p := range document.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
