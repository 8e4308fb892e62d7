// Command pbjson decodes, validates and canonicalizes JSON documents against
// message schemas declared in YAML or JSONC schema files.
package main

import (
	"os"

	"github.com/reoring/pbjson/cmd/pbjson/cmd"
)

func main() { os.Exit(cmd.Main()) }
