package main

import (
	"log"

	"github.com/joho/godotenv"

	"mtdstore-client/cmd"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cmd.Execute()
}
