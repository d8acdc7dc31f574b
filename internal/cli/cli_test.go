// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

func testEnv(args ...string) *Env {
	return &Env{
		Args:   args,
		Getenv: func(string) string { return "" },
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
		Stderr: io.Discard,
	}
}

func TestRunPassesRemainingArgs(t *testing.T) {
	t.Parallel()

	var got []string
	app := AppFunc(func(_ context.Context, env *Env) error {
		got = append(got, env.Args...)
		return nil
	})
	if err := Run(t.Context(), app, testEnv("one", "two")); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("unexpected args: %v", got)
	}
}

type flagApp struct {
	dry bool
	ran bool
}

func (a *flagApp) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry-run", false, "Do nothing.")
}

func (a *flagApp) Run(_ context.Context, _ *Env) error {
	a.ran = true
	return nil
}

func TestRunParsesAppFlags(t *testing.T) {
	t.Parallel()

	app := new(flagApp)
	if err := Run(t.Context(), app, testEnv("-dry-run")); err != nil {
		t.Fatal(err)
	}
	if !app.ran || !app.dry {
		t.Fatalf("ran=%v dry=%v, want both true", app.ran, app.dry)
	}
}

func TestRunVersionFlag(t *testing.T) {
	t.Parallel()

	app := AppFunc(func(_ context.Context, _ *Env) error {
		t.Fatal("app must not run with -version")
		return nil
	})
	err := Run(t.Context(), app, testEnv("-version"))
	if !errors.Is(err, ErrExitVersion) {
		t.Fatalf("want ErrExitVersion, got %v", err)
	}
}

func TestRunUnknownFlagIsUnprintable(t *testing.T) {
	t.Parallel()

	app := AppFunc(func(_ context.Context, _ *Env) error { return nil })
	err := Run(t.Context(), app, testEnv("-no-such-flag"))
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if isPrintableError(err) {
		t.Fatalf("flag parse error should be unprintable: %v", err)
	}
}

func TestInvalidArgsIsPrintable(t *testing.T) {
	t.Parallel()

	app := AppFunc(func(_ context.Context, _ *Env) error {
		return ErrInvalidArgs
	})
	err := Run(t.Context(), app, testEnv())
	if !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("want ErrInvalidArgs, got %v", err)
	}
	if !isPrintableError(err) {
		t.Fatal("ErrInvalidArgs should be printable")
	}
}
