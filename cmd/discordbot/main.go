// ABOUTME: Entry point for the discord-rss-bot CLI
// ABOUTME: Initializes and executes the root command

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
