package main

import (
	"iprep/internal/app"

	"github.com/charmbracelet/log"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatal("ip reputation check failed", "error", err)
	}
}
