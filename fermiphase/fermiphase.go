package main

import "github.com/zpleunis/pint/internal/fermiprog"

func main() {
	fermiprog.Main()
}
