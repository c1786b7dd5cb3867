// Command multiwing generates multi-element wing geometry from a case folder.
package main

func main() {
	Execute()
}
