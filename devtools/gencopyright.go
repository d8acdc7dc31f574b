// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build ignore

// gencopyright.go prepends the license header to every Go file in the repo
// that doesn't have one yet:
//
//	$ go run devtools/gencopyright.go
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

const header = `// © %d Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

`

func main() {
	if err := filepath.WalkDir(".", walk); err != nil {
		log.Fatal(err)
	}
}

func walk(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if d.IsDir() {
		if d.Name() == "testdata" {
			return fs.SkipDir
		}
		return nil
	}
	if filepath.Ext(path) != ".go" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if bytes.HasPrefix(content, []byte("// ©")) ||
		bytes.HasPrefix(content, []byte("// Copyright")) {
		return nil
	}

	info, err := d.Info()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, header, info.ModTime().Year())
	buf.Write(content)

	log.Printf("adding header to %s", path)
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
