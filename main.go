// Command aescbc encrypts and decrypts files with AES in CBC mode.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/aescbc/internal/commands"
	"github.com/idelchi/aescbc/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
