package main

import "judicial_scraper/cmd"

func main() {
	cmd.Execute()
}
