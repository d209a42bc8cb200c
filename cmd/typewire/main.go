package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuannm99/typewire/schemaclient"
)

var (
	serverAddr string
	reqTimeout time.Duration
)

func main() {
	root := &cobra.Command{
		Use:           "typewire",
		Short:         "Manage schemas on a typewire schema server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverAddr, "server", "127.0.0.1:8877", "schema server address")
	root.PersistentFlags().DurationVar(&reqTimeout, "timeout", 5*time.Second, "per-request timeout")

	root.AddCommand(registerCmd(), fetchCmd(), listCmd(), dropCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func dial() (*schemaclient.Client, error) {
	c, err := schemaclient.Dial(serverAddr, reqTimeout)
	if err != nil {
		return nil, err
	}
	c.SetRWTimeout(reqTimeout)
	return c, nil
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <field:type>...",
		Short: "Register a struct schema",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := parseFields(args[1:])
			if err != nil {
				return err
			}
			c, err := dial()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			if err := c.Register(context.Background(), args[0], schema); err != nil {
				return err
			}
			fmt.Printf("registered %s\n%s\n", args[0], formatSchema(schema))
			return nil
		},
	}
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <name>",
		Short: "Fetch a schema and print its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			schema, err := c.Fetch(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatSchema(schema))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered schema names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			names, err := c.List(context.Background())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func dropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Drop a registered schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			return c.Drop(context.Background(), args[0])
		},
	}
}
