package main

import (
	"fmt"
	"os"

	"autc/internal/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for OPENROUTER_API_KEY; real env always wins.
	_ = godotenv.Load()

	p := ui.NewProgram()
	finalModel, err := p.Run()
	if err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
	if m, ok := finalModel.(*ui.Model); ok {
		if m.DB != nil {
			_ = m.DB.Close()
		}
	}
}
