package main

import "github.com/bloghub/blog-management/cmd"

func main() {
	cmd.Execute()
}
