package main

import "github.com/jsphweid/notewheel/cmd"

func main() {
	cmd.Execute()
}
