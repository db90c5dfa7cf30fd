package main

import "github.com/setanarut/texgen/cmd"

func main() {
	cmd.Execute()
}
