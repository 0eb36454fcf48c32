// Command ignitekv is the TCP client for an ignitekv server: set, get, and
// rm subcommands matching the server's three operations one-for-one.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wealrain/ignitekv/internal/client"
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/options"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:          "ignitekv",
		Short:        "Talk to an ignitekv server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", options.DefaultListenAddr, "server address (IP:PORT)")

	root.AddCommand(newSetCmd(&addr), newGetCmd(&addr), newRmCmd(&addr))
	return root
}

func newSetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Connect(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Set(args[0], args[1])
		},
	}
}

func newGetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get the value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Connect(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			value, found, err := c.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println("Key not found")
				return nil
			}

			fmt.Println(value)
			return nil
		},
	}
}

func newRmCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm KEY",
		Short: "Remove a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Connect(*addr)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Remove(args[0]); err != nil {
				if err.Error() == errors.KeyNotFoundMessage {
					fmt.Println("Key not found")
					os.Exit(1)
				}
				return err
			}
			return nil
		},
	}
}
