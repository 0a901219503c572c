package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ElioenaiFerrari/grace-backend/internal/app"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/env"
)

func init() {
	godotenv.Load()
}

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	addr := ":" + env.String("PORT", "4000")
	a.Log.Info("Starting grace", "addr", addr)
	if err := a.Run(addr); err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}
