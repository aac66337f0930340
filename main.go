package main

import (
	"context"
	"log"
	"os"

	"github.com/Rakhulsr/rainy-catalog/app/cmd"
)

func main() {
	if err := cmd.RunCli(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
