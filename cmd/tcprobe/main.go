// Package main enables tcprobe to execute as a CLI tool
package main

import (
	"os"

	"github.com/pouriyajamshidi/tcprobe/internal/app"
)

func main() {
	os.Exit(app.Run())
}
