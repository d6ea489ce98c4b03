package main

import "image-binarizer/internal/cli"

func main() {
	cli.Execute()
}
