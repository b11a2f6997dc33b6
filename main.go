package main

import "github.com/prithwish249/create-vite-tailwind/cmd"

func main() {
	cmd.Execute()
}
