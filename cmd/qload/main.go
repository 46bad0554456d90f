package main

import "github.com/tangosearch/qload/pkg/qload"

func main() {
	qload.Main()
}
