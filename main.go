package main

import "golang-netenforce/cmd"

func main() {
	cmd.Execute()
}
