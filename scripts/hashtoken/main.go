// Command hashtoken prints a bcrypt hash suitable for API_TOKEN_HASH.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	token := ""
	if len(os.Args) > 1 {
		token = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read token: %v", err)
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		log.Fatal("usage: hashtoken <token> (or pipe it on stdin)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash token: %v", err)
	}
	fmt.Println(string(hash))
}
