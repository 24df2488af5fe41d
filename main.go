package main

import "github.com/ValentinKolb/vrpstate/cmd"

func main() {
	cmd.Execute()
}
