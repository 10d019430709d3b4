package main

import (
	"log"

	"github.com/birthdaysvc/birthdayd/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
