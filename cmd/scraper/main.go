// Package main provides the entry point for the schedule scraper CLI.
package main

func main() {
	Execute()
}
