// Package main provides the entrypoint for voucher-email.
package main

import (
	"os"

	"github.com/fallsafe/voucher-email/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
