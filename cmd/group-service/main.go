package main

import (
	"os"

	"github.com/tinto-app/backend/groupservice"
)

func main() {
	if err := groupservice.Run(); err != nil {
		os.Exit(1)
	}
}
