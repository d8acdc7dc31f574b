// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build ignore

// autobump.go tags the next minor release (v0.1.0 -> v0.2.0):
//
//	$ go run devtools/autobump.go
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var tagRe = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

func main() {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		log.Fatal(err)
	}
	cur := strings.TrimSpace(string(out))

	m := tagRe.FindStringSubmatch(cur)
	if m == nil {
		log.Fatalf("current tag %q is not a vX.Y.Z version", cur)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	next := fmt.Sprintf("v%d.%d.%d", major, minor+1, patch)
	log.Printf("tagging %s (previous %s)", next, cur)

	tag := exec.Command("git", "tag", next)
	tag.Stdout = os.Stdout
	tag.Stderr = os.Stderr
	if err := tag.Run(); err != nil {
		log.Fatal(err)
	}
}
