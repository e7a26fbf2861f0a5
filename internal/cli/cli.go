package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Run is the entry point for the CLI. It is kept out of the main package so the
// commands stay usable from tests.
func Run(args []string) error {
	loadDotenv()

	opts := &Options{}
	opts.Init()
	setRootOptions(opts)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return nil
		}
		return err
	}
	return nil
}

// loadDotenv loads the nearest .env without overriding variables already set.
func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				log.Printf("[env] load %s: %v", p, err)
				return
			}
			log.Println("[env] loaded", p)
			return
		}
	}
}
