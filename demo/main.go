package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"doccompare/demo/client"
	"doccompare/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	serverURL := flag.String("url", client.GetEnvOrDefault("DOCCOMPARE_URL", "http://localhost:8080"), "doccompare server URL")
	flag.Parse()

	program := tea.NewProgram(tui.NewModel(*serverURL))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
