package main

import (
	"log"
	"os"

	"recordboard/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}
