package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pizzad/pkg/storage"
	"pizzad/services/api"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pizzactl",
		Short:         "Utility for managing pizzad data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMenuCommand())
	return cmd
}

func newMenuCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Menu seeding and inspection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newMenuImportCommand())
	cmd.AddCommand(newMenuShowCommand())
	return cmd
}

// menuFile is the YAML document accepted by `menu import`.
type menuFile struct {
	Items []struct {
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Price       float64 `yaml:"price"`
	} `yaml:"items"`
}

func newMenuImportCommand() *cobra.Command {
	var (
		file    string
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored menu with the items from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			var doc menuFile
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			if len(doc.Items) == 0 {
				return fmt.Errorf("%s contains no menu items", file)
			}

			menu := api.Menu{}
			for _, item := range doc.Items {
				if item.Name == "" || item.Price <= 0 {
					return fmt.Errorf("menu item %q needs a name and a positive price", item.Name)
				}
				menu.Items = append(menu.Items, api.MenuItem{
					Name:        item.Name,
					Description: item.Description,
					Price:       item.Price,
				})
			}

			store, err := storage.Open(dataDir)
			if err != nil {
				return err
			}
			menus := storage.NewCollection[api.Menu](store, "menu")

			if err := menus.Update("menu", menu); err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					return err
				}
				if err := menus.Create("menu", menu); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d menu items\n", len(menu.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML file listing the menu items")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".data", "Directory holding the record store")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMenuShowCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(dataDir)
			if err != nil {
				return err
			}
			menus := storage.NewCollection[api.Menu](store, "menu")

			menu, err := menus.Read("menu")
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return errors.New("no menu has been imported yet")
				}
				return err
			}

			for _, item := range menu.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %8.2f  %s\n", item.Name, item.Price, item.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", ".data", "Directory holding the record store")
	return cmd
}
