package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/attribution-api/internal/usecases/authenticating"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <senha>",
	Short: "Gera o hash bcrypt de uma senha para AUTH_*_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		hash, err := authenticating.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
