package main

import "github.com/kashguard/go-txverify/cmd"

func main() {
	cmd.Execute()
}
