package main

import "github.com/ValentinKolb/owire/cmd"

func main() {
	cmd.Execute()
}
