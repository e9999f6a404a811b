package main

// genhash prints the bcrypt hash of a password, for seeding usuarios by hand.
// Usage: genhash [password]  (defaults to the demo admin password)

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := "torresegura2026"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
