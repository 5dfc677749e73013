// Command endftool inspects and edits ENDF-6 tapes.
//
//	endftool info n-001_H_001.endf
//	endftool show n-001_H_001.endf 125/3/102
//	endftool filter --mf 3 -o xs.endf.zst n-001_H_001.endf
//	endftool db import --db ./lib endfb80 n-001_H_001.endf
//	endftool njoy pendf --config njoy.yaml -o h1.pendf n-001_H_001.endf
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
