package main

import "github.com/cmmoran/doctracer/cmd"

func main() {
	cmd.Execute()
}
