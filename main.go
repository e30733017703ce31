package main

import (
	"github.com/joho/godotenv"

	"visitor-reception/cmd"
)

func main() {
	godotenv.Load()

	cmd.Execute()
}
