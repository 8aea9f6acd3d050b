// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpw -password 's3cret'
//	echo -n 's3cret' | go run ./cmd/hashpw
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"aura-inn/internal/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	plain := flag.String("password", "", "plain-text password; read from stdin when empty")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if *plain == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "hashpw: no password given")
			os.Exit(2)
		}
		*plain = strings.TrimRight(line, "\r\n")
	}

	hash, err := password.Hash(*plain, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
