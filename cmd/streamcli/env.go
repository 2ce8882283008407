package main

import (
	"os"
	"path/filepath"
)

// defaultKeyPath is the private key location used when no -key flag is
// given. STREAMCLI_PRIV_KEY overrides it, even when set to an empty value.
func defaultKeyPath() string {
	if path, ok := os.LookupEnv("STREAMCLI_PRIV_KEY"); ok {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".stream.priv.key")
}
