// Package main provides the credwatch CLI application.
//
// credwatch watches a credentials file on disk and prompts the user to
// reload stored account settings whenever the file content changes.
package main

func main() {
	Execute()
}
