package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nataliegryphon/credwatch/pkg/account"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage stored accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored account IDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		ids, err := store.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no accounts stored")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a stored account (secret key redacted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, store, err := openAccount(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		fmt.Fprintln(cmd.OutOrStdout(), acct.String())
		fmt.Fprintf(cmd.OutOrStdout(), "valid: %v\n", acct.Valid())
		return nil
	},
}

var (
	setName     string
	setAccess   string
	setSecret   string
	setUserID   string
	setKeyFile  string
	setCertFile string
)

var accountSetCmd = &cobra.Command{
	Use:   "set [id]",
	Short: "Update fields of a stored account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, store, err := openAccount(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		// Only fields whose flag was given are touched; unchanged
		// values never fire notifications or mark the account dirty.
		if cmd.Flags().Changed("name") {
			acct.SetAccountName(setName)
		}
		if cmd.Flags().Changed("access-key") {
			acct.SetAccessKey(setAccess)
		}
		if cmd.Flags().Changed("secret-key") {
			acct.SetSecretKey(setSecret)
		}
		if cmd.Flags().Changed("user-id") {
			acct.SetUserID(setUserID)
		}
		if cmd.Flags().Changed("private-key-file") {
			acct.SetPrivateKeyFile(setKeyFile)
		}
		if cmd.Flags().Changed("certificate-file") {
			acct.SetCertificateFile(setCertFile)
		}

		if !acct.Dirty() {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to save")
			return nil
		}
		if err := acct.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved account %s\n", acct.ID())
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, store, err := openAccount(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := acct.Delete(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted account %s\n", args[0])
		return nil
	},
}

func init() {
	accountSetCmd.Flags().StringVar(&setName, "name", "", "account display name")
	accountSetCmd.Flags().StringVar(&setAccess, "access-key", "", "access key")
	accountSetCmd.Flags().StringVar(&setSecret, "secret-key", "", "secret key")
	accountSetCmd.Flags().StringVar(&setUserID, "user-id", "", "user ID")
	accountSetCmd.Flags().StringVar(&setKeyFile, "private-key-file", "", "private key file path")
	accountSetCmd.Flags().StringVar(&setCertFile, "certificate-file", "", "certificate file path")

	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountSetCmd)
	accountCmd.AddCommand(accountDeleteCmd)
}

// openAccount opens the store and loads one account from it.
// The caller owns closing the returned store.
func openAccount(id string) (*account.Account, account.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	acct, err := account.New(id, store, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return acct, store, nil
}
