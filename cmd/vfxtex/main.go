package main

import "github.com/MeKo-Tech/vfxtex/internal/cmd"

func main() {
	cmd.Execute()
}
